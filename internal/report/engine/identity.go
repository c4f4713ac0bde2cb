package engine

import "time"

const (
	// Placeholder renders wherever a project or profile lookup fails.
	Placeholder = "—"
	// DefaultAccent is the neutral accent used when a profile has no color.
	DefaultAccent = "#111111"
)

// DisplayName resolves a user id to name, falling back to email, falling
// back to the placeholder dash when the profile cannot be found at all.
func (ix Indices) DisplayName(userID string) string {
	p, ok := ix.ProfileByID[userID]
	if !ok {
		return Placeholder
	}
	if p.Name != "" {
		return p.Name
	}
	if p.Email != "" {
		return p.Email
	}
	return Placeholder
}

// AccentColor resolves a user id to its display accent.
func (ix Indices) AccentColor(userID string) string {
	p, ok := ix.ProfileByID[userID]
	if !ok || p.Color == "" {
		return DefaultAccent
	}
	return p.Color
}

// ProjectTitle resolves a project id to its title, degrading to the
// placeholder for dangling references.
func (ix Indices) ProjectTitle(projectID string) string {
	p, ok := ix.ProjectByID[projectID]
	if !ok || p.Title == "" {
		return Placeholder
	}
	return p.Title
}

// FormatDateTime renders a timestamp the way the reports print it,
// dd/mm/yyyy with minutes.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006, 15:04")
}
