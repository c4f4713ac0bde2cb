package render

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vannarellifabrizio-hash/ses-app/internal/report/domain"
	"github.com/vannarellifabrizio-hash/ses-app/internal/report/engine"
)

func renderFixtures() ([]domain.Project, []domain.Profile) {
	projects := []domain.Project{
		{ID: "p1", Title: "Zeta", StartDate: "2024-01-01", EndDate: "2024-12-31"},
		{ID: "p2", Title: "Alfa", Subtitle: "fase due", StartDate: "2024-02-01", EndDate: "2024-11-30"},
	}
	profiles := []domain.Profile{
		{ID: "u1", Email: "anna@example.com", Name: "Anna Bianchi", Role: domain.RoleCollab},
		{ID: "u2", Email: "bruno@example.com", Role: domain.RoleCollab},
	}
	return projects, profiles
}

func renderAct(id, projectID, userID string, createdAt time.Time, text string) domain.Activity {
	return domain.Activity{ID: id, ProjectID: projectID, UserID: userID, CreatedAt: createdAt, Text: text}
}

func TestRenderFlatTableSortAndSuppression(t *testing.T) {
	projects, profiles := renderFixtures()
	base := time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)

	activities := []domain.Activity{
		renderAct("a1", "p1", "u1", base, "riunione"),
		renderAct("a2", "p2", "u1", base.Add(time.Hour), "analisi"),
		renderAct("a3", "p2", "u2", base.Add(2*time.Hour), "sviluppo"),
		renderAct("a4", "p2", "u2", base.Add(3*time.Hour), "test"),
	}
	ix := engine.BuildIndices(projects, profiles, activities, nil)

	doc := RenderFlatTable(activities, ix)

	require.Equal(t, Landscape, doc.Orientation)
	assert.Equal(t, "Export Attività (tabella)", doc.Title)

	rows := doc.Rows()
	require.Len(t, rows, 4)

	// Alfa sorts before Zeta, newest activity first within a project.
	assert.Equal(t, "Alfa", rows[0][0])
	assert.Contains(t, rows[0][1], "test")
	assert.Equal(t, "bruno@example.com", rows[0][2])

	// Same project and collaborator as the previous row: both suppressed.
	assert.Equal(t, "", rows[1][0])
	assert.Contains(t, rows[1][1], "sviluppo")
	assert.Equal(t, "", rows[1][2])

	// Collaborator changes within the project.
	assert.Equal(t, "", rows[2][0])
	assert.Equal(t, "Anna Bianchi", rows[2][2])

	// Project changes: both cells reappear.
	assert.Equal(t, "Zeta", rows[3][0])
	assert.Equal(t, "Anna Bianchi", rows[3][2])
}

func TestRenderFlatTableRowContent(t *testing.T) {
	projects, profiles := renderFixtures()
	created := time.Date(2024, 6, 15, 9, 5, 0, 0, time.Local)
	activities := []domain.Activity{renderAct("a1", "p1", "u1", created, "verifica impianto")}
	ix := engine.BuildIndices(projects, profiles, activities, nil)

	rows := RenderFlatTable(activities, ix).Rows()

	require.Len(t, rows, 1)
	assert.Equal(t, "15/06/2024, 09:05 — verifica impianto", rows[0][1])
}

// Suppression state is computed before pagination: when a long run of
// same-project rows spills onto a second page, the first row there still
// has an empty project cell.
func TestRenderFlatTableSuppressionSurvivesPageBreak(t *testing.T) {
	projects, profiles := renderFixtures()
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.Local)

	activities := make([]domain.Activity, 0, 30)
	for i := 0; i < 30; i++ {
		activities = append(activities, renderAct(
			fmt.Sprintf("a%02d", i), "p1", "u1", base.Add(time.Duration(i)*time.Hour), "voce"))
	}
	ix := engine.BuildIndices(projects, profiles, activities, nil)

	doc := RenderFlatTable(activities, ix)

	require.Len(t, doc.Pages, 2)

	var first, second *TableSlice
	for _, b := range doc.Pages[0].Blocks {
		if b.Table != nil {
			first = b.Table
		}
	}
	for _, b := range doc.Pages[1].Blocks {
		if b.Table != nil {
			second = b.Table
		}
	}
	require.NotNil(t, first)
	require.NotNil(t, second)

	assert.Len(t, first.Rows, 20)
	assert.Len(t, second.Rows, 10)
	assert.True(t, second.ShowHead)

	// Only the very first row of the whole run names the project.
	assert.Equal(t, "Zeta", first.Rows[0][0])
	assert.Equal(t, "", first.Rows[1][0])
	assert.Equal(t, "", second.Rows[0][0])
	assert.Equal(t, "", second.Rows[0][2])

	// Pagination never reorders or drops rows.
	all := doc.Rows()
	require.Len(t, all, 30)
	for i := 1; i < len(all); i++ {
		assert.Contains(t, all[i][1], "voce")
	}
}
