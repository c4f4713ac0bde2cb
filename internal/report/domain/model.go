package domain

import "time"

// Role classifies what a profile is allowed to do in the app.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCollab    Role = "collab"
	RoleDashboard Role = "dashboard"
)

// Project is a time-boxed container for activity entries.
// StartDate and EndDate are calendar dates in ISO form (no time component).
type Project struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle,omitempty"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Past reports whether the project ended before now. The end date counts
// as part of the project, so the cutoff is end_date at 23:59:59 local time.
func (p Project) Past(now time.Time) bool {
	if p.EndDate == "" {
		return false
	}
	end, err := time.ParseInLocation("2006-01-02", p.EndDate, time.Local)
	if err != nil {
		return false
	}
	cutoff := end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return now.After(cutoff)
}

// Profile is a collaborator account. Color is a display accent carried
// through to report rendering as an identity cue.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Role  Role   `json:"role"`
}

// Activity is a timestamped free-text log entry authored by one user
// against one project.
type Activity struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Text      string    `json:"text"`
}

// Snapshot is the consistent read-only view of the three collections the
// aggregation pipeline consumes. Self carries the acting user's own profile
// so their entries resolve a display name even when the backend scopes
// profile visibility.
type Snapshot struct {
	Projects   []Project
	Profiles   []Profile
	Activities []Activity
	Self       *Profile
}
