package engine

import (
	"time"

	"github.com/vannarellifabrizio-hash/ses-app/internal/report/domain"
)

// Period selects the time window of a filter.
type Period string

const (
	PeriodAll    Period = "all"
	PeriodLast7  Period = "last7"
	PeriodCustom Period = "custom"
)

// FilterSpec narrows the activity set. Project and User are record ids or
// "all"; From/To are ISO calendar dates and only consulted when Period is
// custom. From > To is legal and simply matches nothing.
type FilterSpec struct {
	Project string `json:"project" form:"project"`
	User    string `json:"user" form:"user"`
	Period  Period `json:"period" form:"period"`
	From    string `json:"from" form:"from"`
	To      string `json:"to" form:"to"`
}

func all(v string) bool { return v == "" || v == "all" }

// FilterActivities applies the spec's predicates as a logical AND and
// returns the surviving activities in source order. The last7 window is
// rolling and inclusive (created_at ≥ now−7d); the custom window spans
// [from 00:00:00, to 23:59:59] inclusive. An unparseable custom bound
// fails soft: the result is empty, never an error.
func FilterActivities(activities []domain.Activity, spec FilterSpec, now time.Time) []domain.Activity {
	out := make([]domain.Activity, 0, len(activities))

	var from, to time.Time
	switch spec.Period {
	case PeriodLast7:
		from = now.Add(-7 * 24 * time.Hour)
	case PeriodCustom:
		var err error
		from, err = time.ParseInLocation("2006-01-02", spec.From, time.Local)
		if err != nil {
			return out
		}
		to, err = time.ParseInLocation("2006-01-02", spec.To, time.Local)
		if err != nil {
			return out
		}
		to = to.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	}

	for _, a := range activities {
		if !all(spec.Project) && a.ProjectID != spec.Project {
			continue
		}
		if !all(spec.User) && a.UserID != spec.User {
			continue
		}
		switch spec.Period {
		case PeriodLast7:
			if a.CreatedAt.Before(from) {
				continue
			}
		case PeriodCustom:
			if a.CreatedAt.Before(from) || a.CreatedAt.After(to) {
				continue
			}
		}
		out = append(out, a)
	}

	return out
}
