// Package pdf serializes paginated report documents to PDF bytes. It is a
// thin drawing backend: pagination, row order and cell suppression are all
// decided by the renderer, and this writer only draws what it is given.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/vannarellifabrizio-hash/ses-app/internal/report/render"
)

const (
	marginPt      = 40.0
	cellPaddingPt = 6.0
	bodyFontSize  = 9.0
	lineHeightPt  = 11.0
)

// Write serializes a document to PDF.
func Write(doc *render.Document) ([]byte, error) {
	orientation := "P"
	if doc.Orientation == render.Landscape {
		orientation = "L"
	}

	p := fpdf.New(orientation, "pt", "A4", "")
	p.SetAutoPageBreak(false, 0)
	tr := p.UnicodeTranslatorFromDescriptor("")

	w := &writer{p: p, tr: tr}
	for _, page := range doc.Pages {
		p.AddPage()
		w.y = marginPt
		for _, b := range page.Blocks {
			switch {
			case b.Heading != nil:
				w.heading(b.Heading)
			case b.Table != nil:
				w.table(b.Table)
			}
		}
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

type writer struct {
	p  *fpdf.Fpdf
	tr func(string) string
	y  float64
}

func (w *writer) heading(h *render.Heading) {
	w.p.SetTextColor(17, 24, 39)
	for _, ln := range h.Lines {
		w.p.SetFont("Helvetica", "", ln.Size)
		w.p.Text(marginPt, w.y+ln.Size, w.tr(ln.Text))
		w.y += ln.Advance
	}
}

func (w *writer) table(t *render.TableSlice) {
	total := 0.0
	for _, c := range t.Columns {
		total += c.Width
	}

	if t.ShowHead {
		headH := bodyFontSize + 2*cellPaddingPt
		w.p.SetFillColor(17, 24, 39)
		w.p.Rect(marginPt, w.y, total, headH, "F")
		w.p.SetTextColor(255, 255, 255)
		w.p.SetFont("Helvetica", "B", bodyFontSize)
		x := marginPt
		for _, c := range t.Columns {
			w.p.Text(x+cellPaddingPt, w.y+cellPaddingPt+bodyFontSize, w.tr(c.Title))
			x += c.Width
		}
		w.y += headH
	}

	w.p.SetFont("Helvetica", "", bodyFontSize)
	w.p.SetDrawColor(229, 231, 235)

	for _, row := range t.Rows {
		// Wrap every cell first so the row height covers the tallest one.
		// SplitLines works on already-translated bytes; SplitText would
		// re-decode them as UTF-8 and choke on accented text.
		wrapped := make([][][]byte, len(t.Columns))
		lines := 1
		for i, c := range t.Columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			wrapped[i] = w.p.SplitLines([]byte(w.tr(cell)), c.Width-2*cellPaddingPt)
			if len(wrapped[i]) > lines {
				lines = len(wrapped[i])
			}
		}
		rowH := float64(lines)*lineHeightPt + 2*cellPaddingPt

		x := marginPt
		w.p.SetTextColor(17, 24, 39)
		for i, c := range t.Columns {
			w.p.Rect(x, w.y, c.Width, rowH, "D")
			for j, ln := range wrapped[i] {
				w.p.Text(x+cellPaddingPt, w.y+cellPaddingPt+float64(j)*lineHeightPt+bodyFontSize, string(ln))
			}
			x += c.Width
		}
		w.y += rowH
	}
}
