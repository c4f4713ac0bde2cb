package render

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/vannarellifabrizio-hash/ses-app/internal/report/domain"
	"github.com/vannarellifabrizio-hash/ses-app/internal/report/engine"
)

const (
	editorialTitle = "Export Attività (per progetto)"

	// A section heading started below this cursor position would sit too
	// close to the bottom edge, so the page is broken first. The heading
	// and its metadata always land on the same page; only the body table
	// may span pages.
	editorialBreakY = 720.0
)

var editorialColumns = []Column{
	{Title: "DATA", Width: 120},
	{Title: "COLLABORATORE", Width: 140},
	{Title: "ATTIVITÀ", Width: 260},
}

// RenderEditorial produces the portrait per-project export: one section
// per project with at least one filtered activity, in title order
// (Italian collation). Projects with no matching activities are skipped
// entirely. Each section carries title, subtitle, date range and the
// distinct resources touched, followed by the project's activities newest
// first.
func RenderEditorial(projects []domain.Project, filtered []domain.Activity, res engine.Resources, ix engine.Indices) *Document {
	c := collate.New(language.Italian)

	byProject := make(map[string][]domain.Activity)
	for _, a := range filtered {
		byProject[a.ProjectID] = append(byProject[a.ProjectID], a)
	}

	sorted := make([]domain.Project, len(projects))
	copy(sorted, projects)
	sort.SliceStable(sorted, func(i, j int) bool {
		return c.CompareString(sorted[i].Title, sorted[j].Title) < 0
	})

	l := newLayout(Portrait, editorialTitle)

	for _, p := range sorted {
		acts := byProject[p.ID]
		if len(acts) == 0 {
			continue
		}
		sort.SliceStable(acts, func(i, j int) bool {
			return acts[i].CreatedAt.After(acts[j].CreatedAt)
		})

		if l.y > editorialBreakY {
			l.breakPage()
		}
		l.addHeading(sectionHeading(p, res, ix))

		body := make([][]string, 0, len(acts))
		for _, a := range acts {
			body = append(body, []string{
				engine.FormatDateTime(a.CreatedAt),
				ix.DisplayName(a.UserID),
				a.Text,
			})
		}
		l.addTable(editorialColumns, body)
		l.y += 18
	}

	return l.finish()
}

func sectionHeading(p domain.Project, res engine.Resources, ix engine.Indices) Heading {
	subtitle := p.Subtitle
	if subtitle == "" {
		subtitle = engine.Placeholder
	}

	resLine := "Risorse interessate: " + engine.Placeholder
	if users := res.Users(p.ID); len(users) > 0 {
		names := make([]string, 0, len(users))
		for _, id := range users {
			names = append(names, ix.DisplayName(id))
		}
		resLine = "Risorse interessate: " + strings.Join(names, ", ")
	}

	return Heading{Lines: []Line{
		{Text: p.Title, Size: 12, Advance: 14},
		{Text: subtitle, Size: 9, Advance: 12},
		{Text: "Periodo: " + p.StartDate + " → " + p.EndDate, Size: 9, Advance: 10},
		{Text: resLine, Size: 9, Advance: 12},
	}}
}
