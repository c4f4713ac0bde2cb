package render

import "github.com/go-pdf/fpdf"

// Orientation selects the A4 page orientation of a document.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// A4 page dimensions in points, and the shared layout metrics. The body
// metrics mirror the compliance export styling: 9pt body text with 6pt
// cell padding and dark table heads.
const (
	pageShortPt = 595.28
	pageLongPt  = 841.89

	marginPt      = 40.0
	cellPaddingPt = 6.0
	bodyFontSize  = 9.0
	headFontSize  = 9.0
	lineHeightPt  = 11.0
)

// Column describes one table column: heading text and width in points.
type Column struct {
	Title string  `json:"title"`
	Width float64 `json:"width"`
}

// Line is a positioned text line inside a heading block. Advance is how
// far the vertical cursor moves after the line is drawn.
type Line struct {
	Text    string  `json:"text"`
	Size    float64 `json:"size"`
	Advance float64 `json:"advance"`
}

// Heading is a block of free-standing lines (document title or a project
// section heading). A heading is laid out atomically: it is never split
// across a page boundary.
type Heading struct {
	Lines []Line `json:"lines"`
}

// TableSlice is the part of a table that falls on one page. ShowHead
// repeats the column headings at the top of the slice.
type TableSlice struct {
	Columns  []Column   `json:"columns"`
	ShowHead bool       `json:"show_head"`
	Rows     [][]string `json:"rows"`
}

// Block is one laid-out element on a page: exactly one of Heading or
// Table is set.
type Block struct {
	Heading *Heading    `json:"heading,omitempty"`
	Table   *TableSlice `json:"table,omitempty"`
}

// Page holds the blocks assigned to one physical page.
type Page struct {
	Blocks []Block `json:"blocks"`
}

// Document is a paginated description of a report, independent of the
// serialization backend.
type Document struct {
	Orientation Orientation `json:"orientation"`
	Title       string      `json:"title"`
	Pages       []Page      `json:"pages"`
}

// Rows flattens every table slice in order, for consumers that only care
// about row content.
func (d *Document) Rows() [][]string {
	var out [][]string
	for _, pg := range d.Pages {
		for _, b := range pg.Blocks {
			if b.Table != nil {
				out = append(out, b.Table.Rows...)
			}
		}
	}
	return out
}

// measurer predicts cell wrapping with the same Helvetica metrics and
// byte-oriented line splitting the PDF writer draws with, so a row never
// turns out taller than the space the layout reserved for it.
type measurer struct {
	p  *fpdf.Fpdf
	tr func(string) string
}

func newMeasurer() *measurer {
	p := fpdf.New("P", "pt", "A4", "")
	p.SetFont("Helvetica", "", bodyFontSize)
	return &measurer{p: p, tr: p.UnicodeTranslatorFromDescriptor("")}
}

func (m *measurer) lines(text string, width float64) int {
	n := len(m.p.SplitLines([]byte(m.tr(text)), width-2*cellPaddingPt))
	if n < 1 {
		return 1
	}
	return n
}

// layout tracks the vertical cursor while blocks are assigned to pages.
type layout struct {
	doc    *Document
	page   Page
	y      float64
	height float64
	m      *measurer
}

func newLayout(o Orientation, title string) *layout {
	h := pageLongPt
	if o == Landscape {
		h = pageShortPt
	}
	l := &layout{
		doc:    &Document{Orientation: o, Title: title},
		y:      marginPt,
		height: h,
		m:      newMeasurer(),
	}
	l.addHeading(Heading{Lines: []Line{{Text: title, Size: 14, Advance: 20}}})
	return l
}

func (l *layout) bottom() float64 { return l.height - marginPt }

func (l *layout) breakPage() {
	l.doc.Pages = append(l.doc.Pages, l.page)
	l.page = Page{}
	l.y = marginPt
}

func (l *layout) addHeading(h Heading) {
	total := 0.0
	for _, ln := range h.Lines {
		total += ln.Advance
	}
	if len(l.page.Blocks) > 0 && l.y+total > l.bottom() {
		l.breakPage()
	}
	hc := h
	l.page.Blocks = append(l.page.Blocks, Block{Heading: &hc})
	l.y += total
}

// addTable lays table rows out in order, starting a fresh slice with a
// repeated head whenever a row would cross the bottom margin. Rows are
// never reordered or dropped by pagination.
func (l *layout) addTable(cols []Column, rows [][]string) {
	headH := headFontSize + 2*cellPaddingPt
	slice := &TableSlice{Columns: cols, ShowHead: true}
	l.y += headH

	flush := func() {
		if slice != nil {
			l.page.Blocks = append(l.page.Blocks, Block{Table: slice})
		}
	}

	for _, row := range rows {
		h := l.rowHeight(row, cols)
		if l.y+h > l.bottom() {
			flush()
			l.breakPage()
			slice = &TableSlice{Columns: cols, ShowHead: true}
			l.y += headH
		}
		slice.Rows = append(slice.Rows, row)
		l.y += h
	}
	flush()
}

func (l *layout) finish() *Document {
	l.doc.Pages = append(l.doc.Pages, l.page)
	return l.doc
}

func (l *layout) rowHeight(row []string, cols []Column) float64 {
	lines := 1
	for i, cell := range row {
		if i >= len(cols) {
			break
		}
		if n := l.m.lines(cell, cols[i].Width); n > lines {
			lines = n
		}
	}
	return float64(lines)*lineHeightPt + 2*cellPaddingPt
}
