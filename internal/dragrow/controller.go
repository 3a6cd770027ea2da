package dragrow

import (
	"go.uber.org/zap"
)

// State is the Controller's position in the press/move/release cycle. A valid
// press goes straight to StateDragging; there is no movement threshold.
type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// Outcome says what a handled event did.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeStarted
	OutcomeDragged
	OutcomeMoved
	OutcomeIgnoredPress
	OutcomeNoDropTarget
	OutcomeInvalidDropTarget
	OutcomeCancelled
)

var outcomeNames = map[Outcome]string{
	OutcomeNone:              "none",
	OutcomeStarted:           "started",
	OutcomeDragged:           "dragged",
	OutcomeMoved:             "moved",
	OutcomeIgnoredPress:      "ignored_press",
	OutcomeNoDropTarget:      "no_drop_target",
	OutcomeInvalidDropTarget: "invalid_drop_target",
	OutcomeCancelled:         "cancelled",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return "unknown"
}

// Result reports the effect of one event. Consumed means the host must
// suppress the event's default action (page scroll, text selection).
// From and To are set for OutcomeMoved. OutcomeCancelled carries the
// abandoned row in both. Other drop outcomes set From.
type Result struct {
	Consumed bool
	Outcome  Outcome
	From     int
	To       int
}

// Transformer applies the visual offset of the dragged row.
type Transformer interface {
	Translate(row, dx, dy int)
	Reset(row int)
}

type Option func(*Controller)

// WithTransformer receives translate/reset calls while a row is dragged.
func WithTransformer(t Transformer) Option {
	return func(c *Controller) { c.fx = t }
}

// WithLogger logs ignored presses and no-op drops at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

type session struct {
	row    int
	origin Point
	offset Point
}

// Controller tracks one drag session over a Table. It is not safe for
// concurrent use; hosts deliver events from a single event loop.
type Controller struct {
	table    Table
	geom     Geometry
	fx       Transformer
	log      *zap.Logger
	attached bool

	state State
	sess  session
}

// New returns a detached Controller. Call Attach before feeding events.
func New(table Table, geom Geometry, opts ...Option) *Controller {
	c := &Controller{
		table: table,
		geom:  geom,
		log:   zap.NewNop(),
		sess:  session{row: -1},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Attach starts accepting events.
func (c *Controller) Attach() { c.attached = true }

// Detach stops accepting events and abandons any open session.
func (c *Controller) Detach() {
	c.Cancel()
	c.attached = false
}

func (c *Controller) Attached() bool { return c.attached }
func (c *Controller) State() State   { return c.state }
func (c *Controller) Active() bool   { return c.state == StateDragging }

// ActiveRow is the position of the dragged row, or -1.
func (c *Controller) ActiveRow() int {
	if !c.Active() {
		return -1
	}
	return c.sess.row
}

// Offset is the pointer displacement since the press.
func (c *Controller) Offset() Point { return c.sess.offset }

// Translation is the rendered offset of the dragged row: vertical only.
func (c *Controller) Translation() (row, dy int, ok bool) {
	if !c.Active() {
		return -1, 0, false
	}
	return c.sess.row, c.sess.offset.Y, true
}

// Handle feeds one pointer event through the state machine.
func (c *Controller) Handle(ev PointerEvent) Result {
	if !c.attached {
		return Result{}
	}
	switch ev.Phase {
	case PhaseStart:
		return c.press(ev)
	case PhaseMove:
		return c.move(ev)
	case PhaseEnd:
		return c.release(ev)
	}
	return Result{}
}

// Cancel abandons the open session, if any, leaving table order unchanged.
// With no session open it returns the zero Result.
func (c *Controller) Cancel() Result {
	if !c.Active() {
		return Result{}
	}
	row := c.sess.row
	c.finish()
	c.log.Debug("drag cancelled", zap.Int("row", row))
	return Result{Outcome: OutcomeCancelled, From: row, To: row}
}

func (c *Controller) press(ev PointerEvent) Result {
	if c.Active() {
		// The release for the previous press never arrived.
		c.log.Debug("stale drag session replaced", zap.Int("row", c.sess.row))
		c.finish()
	}
	row := RowAt(c.geom, ev.Pos)
	switch {
	case row < 0:
		c.log.Debug("press ignored: no row", zap.Stringer("kind", ev.Kind))
		return Result{Outcome: OutcomeIgnoredPress, From: -1}
	case row == 0:
		c.log.Debug("press ignored: header row", zap.Stringer("kind", ev.Kind))
		return Result{Outcome: OutcomeIgnoredPress, From: 0}
	}
	page := ev.Pos.Add(c.geom.Scroll())
	if page.X >= c.geom.ControlEdge(row) {
		c.log.Debug("press ignored: control column",
			zap.Int("row", row), zap.Int("x", page.X), zap.Int("edge", c.geom.ControlEdge(row)))
		return Result{Outcome: OutcomeIgnoredPress, From: row}
	}
	c.state = StateDragging
	c.sess = session{row: row, origin: ev.Pos}
	return Result{Outcome: OutcomeStarted, From: row}
}

func (c *Controller) move(ev PointerEvent) Result {
	if !c.Active() {
		return Result{}
	}
	c.sess.offset = ev.Pos.Sub(c.sess.origin)
	if c.fx != nil {
		c.fx.Translate(c.sess.row, 0, c.sess.offset.Y)
	}
	return Result{Consumed: true, Outcome: OutcomeDragged, From: c.sess.row}
}

func (c *Controller) release(PointerEvent) Result {
	if !c.Active() {
		return Result{}
	}
	from := c.sess.row
	at := c.sess.origin.Add(c.sess.offset).Add(c.geom.Scroll())
	to := HitTest(c.geom, at, from)
	c.finish()

	switch {
	case to < 0 && c.geom.Bounds(from).Contains(at):
		c.log.Debug("drop ignored: source row", zap.Int("from", from))
		return Result{Outcome: OutcomeInvalidDropTarget, From: from, To: from}
	case to < 0:
		c.log.Debug("drop ignored: no row under pointer", zap.Int("from", from), zap.Int("x", at.X), zap.Int("y", at.Y))
		return Result{Outcome: OutcomeNoDropTarget, From: from, To: -1}
	case to == 0:
		c.log.Debug("drop ignored: header row", zap.Int("from", from))
		return Result{Outcome: OutcomeInvalidDropTarget, From: from, To: 0}
	}
	if err := Relocate(c.table, from, to); err != nil {
		c.log.Warn("drop ignored: relocation rejected", zap.Int("from", from), zap.Int("to", to), zap.Error(err))
		return Result{Outcome: OutcomeInvalidDropTarget, From: from, To: to}
	}
	c.log.Debug("row moved", zap.Int("from", from), zap.Int("to", to))
	return Result{Outcome: OutcomeMoved, From: from, To: to}
}

// finish resets the offset and visual transform and returns to idle.
func (c *Controller) finish() {
	row := c.sess.row
	c.sess = session{row: -1}
	c.state = StateIdle
	if c.fx != nil && row >= 0 {
		c.fx.Reset(row)
	}
}
