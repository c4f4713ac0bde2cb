package render

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vannarellifabrizio-hash/ses-app/internal/report/domain"
	"github.com/vannarellifabrizio-hash/ses-app/internal/report/engine"
)

// drawnHeight replicates the PDF writer's drawing math for one page:
// heading advances, repeated table heads and real-metric wrapped rows.
func drawnHeight(pg Page) float64 {
	p := fpdf.New("P", "pt", "A4", "")
	p.SetFont("Helvetica", "", bodyFontSize)
	tr := p.UnicodeTranslatorFromDescriptor("")

	total := 0.0
	for _, b := range pg.Blocks {
		if b.Heading != nil {
			for _, ln := range b.Heading.Lines {
				total += ln.Advance
			}
		}
		if b.Table != nil {
			if b.Table.ShowHead {
				total += headFontSize + 2*cellPaddingPt
			}
			for _, row := range b.Table.Rows {
				lines := 1
				for i, c := range b.Table.Columns {
					cell := ""
					if i < len(row) {
						cell = row[i]
					}
					if n := len(p.SplitLines([]byte(tr(cell)), c.Width-2*cellPaddingPt)); n > lines {
						lines = n
					}
				}
				total += float64(lines)*lineHeightPt + 2*cellPaddingPt
			}
		}
	}
	return total
}

// Uppercase Helvetica glyphs are much wider than the average, so rows the
// layout reserved one line for must not draw taller and clip past the
// bottom margin.
func TestLayoutReservesDrawnHeight(t *testing.T) {
	projects := []domain.Project{
		{ID: "p1", Title: "MANUTENZIONE STRAORDINARIA CABINE PRIMARIE", StartDate: "2024-01-01", EndDate: "2024-12-31"},
	}
	profiles := []domain.Profile{
		{ID: "u1", Email: "anna@example.com", Name: "ANNA MARIA BIANCHI VERDI", Role: domain.RoleCollab},
	}

	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.Local)
	text := "VERIFICA STRAORDINARIA IMPIANTO ELETTRICO CABINA PRIMARIA — CONTROLLO " +
		"QUADRI MT/BT E PROVE FUNZIONALI DELLE PROTEZIONI DIFFERENZIALI"

	activities := make([]domain.Activity, 0, 40)
	for i := 0; i < 40; i++ {
		activities = append(activities, domain.Activity{
			ID: fmt.Sprintf("a%02d", i), ProjectID: "p1", UserID: "u1",
			CreatedAt: base.Add(time.Duration(i) * time.Hour), Text: text,
		})
	}
	ix := engine.BuildIndices(projects, profiles, activities, nil)

	flat := RenderFlatTable(activities, ix)
	require.Greater(t, len(flat.Pages), 1)
	for i, pg := range flat.Pages {
		assert.LessOrEqual(t, marginPt+drawnHeight(pg), pageShortPt-marginPt,
			"flat page %d overflows the bottom margin", i)
	}

	res := engine.ResolveResources(activities)
	editorial := RenderEditorial(projects, activities, res, ix)
	require.Greater(t, len(editorial.Pages), 1)
	for i, pg := range editorial.Pages {
		assert.LessOrEqual(t, marginPt+drawnHeight(pg), pageLongPt-marginPt,
			"editorial page %d overflows the bottom margin", i)
	}
}
