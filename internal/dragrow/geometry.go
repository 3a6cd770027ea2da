package dragrow

// Rect is an axis-aligned rectangle in page coordinates. Containment is
// half-open: a point on the right or bottom edge belongs to the neighbour.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether r covers no area. Rows that are not currently drawn
// report an empty rect and can never be hit.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

func (r Rect) Contains(p Point) bool {
	if r.Empty() {
		return false
	}
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Geometry answers layout questions about the rows of a Table.
type Geometry interface {
	// Rows is the number of rows, header included.
	Rows() int
	// Bounds is the rect of row i in page coordinates, with the table
	// container's own offset already applied.
	Bounds(i int) Rect
	// ControlEdge is the page X of the left edge of row i's control column.
	// Presses at or beyond it never start a drag.
	ControlEdge(i int) int
	// Scroll is the current page scroll, added to client points.
	Scroll() Point
}

// HitTest returns the first row, in order, whose bounds contain the page
// point p and whose position is not exclude. It returns -1 when nothing
// matches.
func HitTest(g Geometry, p Point, exclude int) int {
	if g == nil {
		return -1
	}
	n := g.Rows()
	for i := 0; i < n; i++ {
		if i == exclude {
			continue
		}
		if g.Bounds(i).Contains(p) {
			return i
		}
	}
	return -1
}

// RowAt returns the row under the client point p, or -1.
func RowAt(g Geometry, p Point) int {
	if g == nil {
		return -1
	}
	return HitTest(g, p.Add(g.Scroll()), -1)
}
