package render

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/vannarellifabrizio-hash/ses-app/internal/report/domain"
	"github.com/vannarellifabrizio-hash/ses-app/internal/report/engine"
)

const flatTableTitle = "Export Attività (tabella)"

var flatColumns = []Column{
	{Title: "NOME PROGETTI", Width: 190},
	{Title: "ATTIVITÀ SVOLTE", Width: 430},
	{Title: "COLLABORATORI", Width: 170},
}

// RenderFlatTable produces the landscape merged-cell table export: one row
// per filtered activity, sorted by project title (Italian collation) then
// newest first within a project. Consecutive rows sharing a project title
// leave the project cell empty; the collaborator cell is likewise emptied
// unless the project changed or the name differs from the previous row.
// Suppression state is computed over the whole sorted sequence before
// pagination, so a page break never resets it.
func RenderFlatTable(filtered []domain.Activity, ix engine.Indices) *Document {
	c := collate.New(language.Italian)

	rows := make([]domain.Activity, len(filtered))
	copy(rows, filtered)
	sort.SliceStable(rows, func(i, j int) bool {
		ti := ix.ProjectTitle(rows[i].ProjectID)
		tj := ix.ProjectTitle(rows[j].ProjectID)
		if cmp := c.CompareString(ti, tj); cmp != 0 {
			return cmp < 0
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})

	body := make([][]string, 0, len(rows))
	var lastProject, lastCollab string
	for i, a := range rows {
		projTitle := ix.ProjectTitle(a.ProjectID)
		collabName := ix.DisplayName(a.UserID)
		activityText := engine.FormatDateTime(a.CreatedAt) + " — " + a.Text

		showProj := i == 0 || projTitle != lastProject
		showCollab := showProj || collabName != lastCollab
		lastProject = projTitle
		lastCollab = collabName

		projCell, collabCell := "", ""
		if showProj {
			projCell = projTitle
		}
		if showCollab {
			collabCell = collabName
		}
		body = append(body, []string{projCell, activityText, collabCell})
	}

	l := newLayout(Landscape, flatTableTitle)
	l.addTable(flatColumns, body)
	return l.finish()
}
