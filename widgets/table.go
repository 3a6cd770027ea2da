package widgets

import "strings"

// Column is a fixed-width table column.
type Column struct {
	Title string
	Width int
}

// Table lays cells out in fixed-width columns separated by Gap spaces.
// Line 0 is the header; line i is Rows[i-1].
type Table struct {
	Columns []Column
	Rows    [][]string
	Gap     int
}

// Offsets returns the x position of each column's left edge.
func (t Table) Offsets() []int {
	out := make([]int, len(t.Columns))
	x := 0
	for i, c := range t.Columns {
		out[i] = x
		x += c.Width + t.Gap
	}
	return out
}

// Width is the total width of a rendered line.
func (t Table) Width() int {
	if len(t.Columns) == 0 {
		return 0
	}
	w := t.Gap * (len(t.Columns) - 1)
	for _, c := range t.Columns {
		w += c.Width
	}
	return w
}

// Header renders the title line.
func (t Table) Header() string {
	titles := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		titles[i] = c.Title
	}
	return t.Line(titles)
}

// Line renders one row of cells. Missing cells render blank; cells wider
// than their column are truncated.
func (t Table) Line(cells []string) string {
	parts := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = PadRight(cell, c.Width)
	}
	return strings.Join(parts, strings.Repeat(" ", t.Gap))
}

// Lines renders the header followed by every row.
func (t Table) Lines() []string {
	out := make([]string, 0, len(t.Rows)+1)
	out = append(out, t.Header())
	for _, row := range t.Rows {
		out = append(out, t.Line(row))
	}
	return out
}

func (t Table) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(t.Columns) == 0 {
		return "No data"
	}
	lines := t.Lines()
	if len(lines) > height {
		lines = lines[:height]
	}
	for i := range lines {
		lines[i] = PadRight(lines[i], width)
	}
	return strings.Join(lines, "\n")
}
