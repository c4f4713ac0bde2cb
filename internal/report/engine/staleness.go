package engine

import (
	"math"
	"time"

	"github.com/vannarellifabrizio-hash/ses-app/internal/report/domain"
)

// Status classifies how long ago a user's most recent activity occurred.
type Status string

const (
	StatusFresh   Status = "fresh"
	StatusWarning Status = "warning"
	StatusStale   Status = "stale"
)

// Color returns the dashboard accent for the status.
func (s Status) Color() string {
	switch s {
	case StatusFresh:
		return "#16a34a"
	case StatusWarning:
		return "#f59e0b"
	default:
		return "#dc2626"
	}
}

// Staleness is the recency classification for one user.
type Staleness struct {
	LastActivity *time.Time `json:"last_activity"`
	Status       Status     `json:"status"`
}

// EvaluateStaleness finds each author's most recent activity and classifies
// its age in whole days from now: ≤7 fresh, 8-10 warning, 11+ stale. Users
// with no recorded activity are stale with a nil last activity. Ties keep
// the first occurrence in source order. The result is recomputed on every
// call; now is a moving reference point and must be injected by the caller.
func EvaluateStaleness(activities []domain.Activity, now time.Time) map[string]Staleness {
	last := make(map[string]time.Time, 16)
	for _, a := range activities {
		if prev, ok := last[a.UserID]; !ok || a.CreatedAt.After(prev) {
			last[a.UserID] = a.CreatedAt
		}
	}

	out := make(map[string]Staleness, len(last))
	for userID, t := range last {
		ts := t
		out[userID] = Staleness{LastActivity: &ts, Status: classify(now, t)}
	}
	return out
}

// StalenessFor looks a user up in an evaluated map, defaulting to stale
// with no last activity for users who never logged anything.
func StalenessFor(m map[string]Staleness, userID string) Staleness {
	if s, ok := m[userID]; ok {
		return s
	}
	return Staleness{Status: StatusStale}
}

func classify(now, last time.Time) Status {
	days := int(math.Floor(now.Sub(last).Hours() / 24))
	switch {
	case days <= 7:
		return StatusFresh
	case days <= 10:
		return StatusWarning
	default:
		return StatusStale
	}
}
