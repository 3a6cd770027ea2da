package dragrow

// Kind is the pointer family an event came from.
type Kind int

const (
	KindMouse Kind = iota
	KindTouch
)

func (k Kind) String() string {
	switch k {
	case KindMouse:
		return "mouse"
	case KindTouch:
		return "touch"
	default:
		return "unknown"
	}
}

// Phase is the stage of a press-to-release cycle an event belongs to.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Point is a 2D coordinate. Client points are relative to the visible
// viewport; page points have the current scroll added.
type Point struct {
	X, Y int
}

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// PointerEvent is the single pointer shape the Controller understands.
// Pos is in client coordinates.
type PointerEvent struct {
	Kind  Kind
	Phase Phase
	Pos   Point
}

// MouseEvent builds a mouse PointerEvent.
func MouseEvent(phase Phase, x, y int) PointerEvent {
	return PointerEvent{Kind: KindMouse, Phase: phase, Pos: Point{X: x, Y: y}}
}

// TouchEvent normalises a touch list into a PointerEvent using the first
// touch point. Only single-point gestures are accepted: a start or move with
// more than one active touch is rejected. An end event may carry no touches
// at all, since the lifted finger is no longer part of the list.
func TouchEvent(phase Phase, touches []Point) (PointerEvent, bool) {
	ev := PointerEvent{Kind: KindTouch, Phase: phase}
	switch {
	case phase == PhaseEnd && len(touches) == 0:
		return ev, true
	case len(touches) != 1:
		return PointerEvent{}, false
	}
	ev.Pos = touches[0]
	return ev, true
}
