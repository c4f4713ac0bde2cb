package engine

import "github.com/vannarellifabrizio-hash/ses-app/internal/report/domain"

// Indices are the lookup structures the evaluators and renderers share.
// Building them is pure and idempotent; activity order within a project is
// the source collection's order, not re-sorted.
type Indices struct {
	ProjectByID         map[string]domain.Project
	ProfileByID         map[string]domain.Profile
	ActivitiesByProject map[string][]domain.Activity
}

// BuildIndices materializes the lookups from the raw collections. When the
// acting user's own profile is missing from the profile collection (some
// backends scope profile visibility), self is injected so the acting
// user's entries still resolve a display name.
func BuildIndices(projects []domain.Project, profiles []domain.Profile, activities []domain.Activity, self *domain.Profile) Indices {
	ix := Indices{
		ProjectByID:         make(map[string]domain.Project, len(projects)),
		ProfileByID:         make(map[string]domain.Profile, len(profiles)+1),
		ActivitiesByProject: make(map[string][]domain.Activity),
	}

	for _, p := range projects {
		ix.ProjectByID[p.ID] = p
	}
	for _, p := range profiles {
		ix.ProfileByID[p.ID] = p
	}
	if self != nil && self.ID != "" {
		if _, ok := ix.ProfileByID[self.ID]; !ok {
			ix.ProfileByID[self.ID] = *self
		}
	}
	for _, a := range activities {
		ix.ActivitiesByProject[a.ProjectID] = append(ix.ActivitiesByProject[a.ProjectID], a)
	}

	return ix
}
