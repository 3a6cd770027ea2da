package tui

import "github.com/jask/pickboard/internal/dragrow"

// viewport places board rows on screen and answers dragrow geometry
// queries. Page coordinates are screen coordinates plus the scroll, so a
// row's page rect only changes when the layout does.
type viewport struct {
	b      *board
	top    int // screen line of the board's first line
	height int // lines available to the board, header included
	width  int
	edge   int // x of the pick column
	scroll int
	sticky bool
}

var _ dragrow.Geometry = (*viewport)(nil)

func (v *viewport) Rows() int { return v.b.Len() }

func (v *viewport) Scroll() dragrow.Point { return dragrow.Point{Y: v.scroll} }

func (v *viewport) ControlEdge(int) int { return v.edge }

func (v *viewport) Bounds(i int) dragrow.Rect {
	line, ok := v.screenLine(i)
	if !ok {
		return dragrow.Rect{}
	}
	return dragrow.Rect{X: 0, Y: line + v.scroll, W: v.width, H: 1}
}

// screenLine is where row i is drawn, if it is drawn at all.
func (v *viewport) screenLine(i int) (int, bool) {
	if i < 0 || i >= v.b.Len() || v.height <= 0 {
		return 0, false
	}
	if v.sticky && i == 0 {
		return v.top, true
	}
	first := v.scroll
	if v.sticky {
		first = v.scroll + 1
	}
	if i < first || i >= v.scroll+v.height {
		return 0, false
	}
	return v.top + i - v.scroll, true
}

// rowAtSlot is the row drawn in the k-th board line, or -1.
func (v *viewport) rowAtSlot(k int) int {
	if v.sticky && k == 0 {
		return 0
	}
	i := v.scroll + k
	if i >= v.b.Len() {
		return -1
	}
	return i
}

func (v *viewport) maxScroll() int {
	return max(0, v.b.Len()-v.height)
}

// scrollBy moves the viewport and reports whether it changed.
func (v *viewport) scrollBy(d int) bool {
	next := min(max(0, v.scroll+d), v.maxScroll())
	if next == v.scroll {
		return false
	}
	v.scroll = next
	return true
}

func (v *viewport) clamp() {
	v.scroll = min(max(0, v.scroll), v.maxScroll())
}
