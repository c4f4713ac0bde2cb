package engine

import "github.com/vannarellifabrizio-hash/ses-app/internal/report/domain"

// Resources maps each project to the distinct set of users who authored at
// least one activity in it within the filtered set. Order of users per
// project is first appearance in the filtered set, which keeps report
// output deterministic.
type Resources struct {
	byProject map[string][]string
	members   map[string]map[string]struct{}
}

// ResolveResources derives the per-project author sets from an already
// filtered activity list.
func ResolveResources(filtered []domain.Activity) Resources {
	r := Resources{
		byProject: make(map[string][]string),
		members:   make(map[string]map[string]struct{}),
	}
	for _, a := range filtered {
		set, ok := r.members[a.ProjectID]
		if !ok {
			set = make(map[string]struct{})
			r.members[a.ProjectID] = set
		}
		if _, seen := set[a.UserID]; seen {
			continue
		}
		set[a.UserID] = struct{}{}
		r.byProject[a.ProjectID] = append(r.byProject[a.ProjectID], a.UserID)
	}
	return r
}

// Users returns the distinct author ids for a project. Projects absent
// from the filtered set yield an empty slice, so callers never need an
// existence check.
func (r Resources) Users(projectID string) []string {
	return r.byProject[projectID]
}

// Contains reports whether a user authored anything in the project.
func (r Resources) Contains(projectID, userID string) bool {
	_, ok := r.members[projectID][userID]
	return ok
}
