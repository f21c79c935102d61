package pdftext

import (
	"math"
	"sort"
	"strings"
)

const defaultFontSize = 10.0

// Glyph is a positioned text run as reported by the PDF content stream.
// Y grows upwards, as in PDF user space.
type Glyph struct {
	X, Y, W float64
	Size    float64
	S       string
}

// Layout holds the tolerances used to rebuild lines, cells and tables from glyphs.
// Gaps are relative to the glyph font size.
type Layout struct {
	LineTolerance float64 // max Y distance, in points, for glyphs on one line
	WordGap       float64 // gap that inserts a space inside a cell
	CellGap       float64 // gap that starts a new cell
	ColumnSlack   float64 // points by which cell spans may miss each other and still share a column
	MinColumns    int     // cells a line needs to count as a table row
	MaxBreak      int     // non-row lines tolerated inside a table
}

// DefaultLayout suits machine-generated e-invoices.
func DefaultLayout() Layout {
	return Layout{
		LineTolerance: 2,
		WordGap:       0.2,
		CellGap:       1.2,
		ColumnSlack:   1,
		MinColumns:    3,
		MaxBreak:      2,
	}
}

type cell struct {
	x0, x1 float64
	text   string
}

func (c cell) center() float64 { return (c.x0 + c.x1) / 2 }

type line struct {
	y      float64
	glyphs []Glyph
	cells  []cell
}

// Page rebuilds page text and tables from glyphs.
func (l Layout) Page(glyphs []Glyph) StaticPage {
	lines := l.lines(glyphs)
	var b strings.Builder
	for _, ln := range lines {
		texts := make([]string, 0, len(ln.cells))
		for _, c := range ln.cells {
			texts = append(texts, c.text)
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join(texts, " "))
	}
	return StaticPage{Content: b.String(), Grids: l.tables(lines)}
}

// lines groups glyphs top-to-bottom into lines and splits each into cells.
func (l Layout) lines(glyphs []Glyph) []line {
	sorted := make([]Glyph, 0, len(glyphs))
	for _, g := range glyphs {
		if g.S != "" {
			sorted = append(sorted, g)
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []line
	cur := line{y: sorted[0].Y}
	for _, g := range sorted {
		if math.Abs(g.Y-cur.y) >= l.LineTolerance && len(cur.glyphs) > 0 {
			lines = append(lines, cur)
			cur = line{y: g.Y}
		}
		cur.glyphs = append(cur.glyphs, g)
	}
	lines = append(lines, cur)

	out := lines[:0]
	for _, ln := range lines {
		sort.SliceStable(ln.glyphs, func(i, j int) bool { return ln.glyphs[i].X < ln.glyphs[j].X })
		ln.cells = l.cells(ln.glyphs)
		if len(ln.cells) > 0 {
			out = append(out, ln)
		}
	}
	return out
}

func (l Layout) cells(glyphs []Glyph) []cell {
	var cells []cell
	var prevEnd float64
	pendingSpace := false
	for _, g := range glyphs {
		if strings.TrimSpace(g.S) == "" {
			pendingSpace = true
			continue
		}
		size := g.Size
		if size <= 0 {
			size = defaultFontSize
		}
		gap := g.X - prevEnd
		switch {
		case len(cells) == 0 || gap > l.CellGap*size:
			cells = append(cells, cell{x0: g.X, x1: g.X})
		case pendingSpace || gap > l.WordGap*size:
			cells[len(cells)-1].text += " "
		}
		c := &cells[len(cells)-1]
		c.text += g.S
		c.x1 = math.Max(c.x1, g.X+g.W)
		prevEnd = g.X + g.W
		pendingSpace = false
	}
	for i := range cells {
		cells[i].text = strings.TrimSpace(cells[i].text)
	}
	return cells
}

// tables returns every block of consecutive table rows that has at least two
// rows, top to bottom.
func (l Layout) tables(lines []line) []Table {
	var tables []Table
	start, end, breaks := -1, -1, 0
	flush := func() {
		if start >= 0 && l.rowCount(lines[start:end+1]) >= 2 {
			tables = append(tables, l.grid(lines[start:end+1]))
		}
		start, end, breaks = -1, -1, 0
	}
	for i, ln := range lines {
		if len(ln.cells) >= l.MinColumns {
			if start < 0 {
				start = i
			}
			end, breaks = i, 0
			continue
		}
		if start >= 0 {
			breaks++
			if breaks > l.MaxBreak {
				flush()
			}
		}
	}
	flush()
	return tables
}

func (l Layout) rowCount(block []line) int {
	n := 0
	for _, ln := range block {
		if len(ln.cells) >= l.MinColumns {
			n++
		}
	}
	return n
}

type span struct{ x0, x1 float64 }

// columns merges the horizontal spans of all table-row cells; each merged
// span is one column.
func (l Layout) columns(block []line) []span {
	var spans []span
	for _, ln := range block {
		if len(ln.cells) < l.MinColumns {
			continue
		}
		for _, c := range ln.cells {
			spans = append(spans, span{c.x0, c.x1})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].x0 < spans[j].x0 })

	var cols []span
	for _, s := range spans {
		if n := len(cols); n > 0 && s.x0 <= cols[n-1].x1+l.ColumnSlack {
			cols[n-1].x1 = math.Max(cols[n-1].x1, s.x1)
			continue
		}
		cols = append(cols, s)
	}
	return cols
}

func (l Layout) grid(block []line) Table {
	cols := l.columns(block)
	t := make(Table, 0, len(block))
	for _, ln := range block {
		row := make([]string, len(cols))
		for _, c := range ln.cells {
			i := columnOf(cols, c.center())
			if row[i] != "" {
				row[i] += " "
			}
			row[i] += c.text
		}
		t = append(t, row)
	}
	return t
}

// columnOf returns the column containing x, or the nearest one.
func columnOf(cols []span, x float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, c := range cols {
		if x >= c.x0 && x <= c.x1 {
			return i
		}
		d := math.Min(math.Abs(x-c.x0), math.Abs(x-c.x1))
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
