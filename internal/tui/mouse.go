package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/pickboard/internal/dragrow"
	"github.com/jask/pickboard/internal/service"
)

// pointerFromMouse maps terminal mouse reports onto dragrow events. Only the
// left button drags; wheel and other buttons are not pointer events.
func pointerFromMouse(m tea.MouseMsg) (dragrow.PointerEvent, bool) {
	switch m.Action {
	case tea.MouseActionPress:
		if m.Button != tea.MouseButtonLeft {
			return dragrow.PointerEvent{}, false
		}
		return dragrow.MouseEvent(dragrow.PhaseStart, m.X, m.Y), true
	case tea.MouseActionMotion:
		return dragrow.MouseEvent(dragrow.PhaseMove, m.X, m.Y), true
	case tea.MouseActionRelease:
		return dragrow.MouseEvent(dragrow.PhaseEnd, m.X, m.Y), true
	}
	return dragrow.PointerEvent{}, false
}

func isWheel(m tea.MouseMsg) (int, bool) {
	if m.Action != tea.MouseActionPress {
		return 0, false
	}
	switch m.Button {
	case tea.MouseButtonWheelUp:
		return -1, true
	case tea.MouseButtonWheelDown:
		return 1, true
	}
	return 0, false
}

func (a *App) handleMouse(m tea.MouseMsg) (tea.Model, tea.Cmd) {
	a.pointer = dragrow.Point{X: m.X, Y: m.Y}
	a.hasPointer = true

	if a.modal != modalNone {
		if m.Action == tea.MouseActionPress && m.Button == tea.MouseButtonLeft {
			a.modal = modalNone
		}
		return a, nil
	}

	if d, ok := isWheel(m); ok {
		// The wheel would move rows under a held row.
		if !a.drag.Active() {
			a.vp.scrollBy(d)
		}
		return a, nil
	}

	ev, ok := pointerFromMouse(m)
	if !ok {
		return a, nil
	}
	res := a.drag.Handle(ev)
	switch res.Outcome {
	case dragrow.OutcomeStarted:
		if r := a.board.row(res.From); r != nil {
			a.setStatus(fmt.Sprintf("moving %s at %s", r.Game.Visitor.Name, r.Game.Home.Name))
		}
	case dragrow.OutcomeIgnoredPress:
		// Presses on the pick column select a team instead of dragging.
		if r := a.board.row(res.From); r != nil && m.X >= a.vp.edge {
			side := service.PickHome
			if m.X < a.vp.edge+pickSplit {
				side = service.PickVisitor
			}
			a.setPick(r, side)
		}
	case dragrow.OutcomeMoved:
		r := a.board.row(res.To)
		a.setStatus(fmt.Sprintf("%s at %s is now #%d", r.Game.Visitor.Name, r.Game.Home.Name, r.Confidence))
		a.log.Debug("board reordered", zap.Int("from", res.From), zap.Int("to", res.To))
	case dragrow.OutcomeNoDropTarget, dragrow.OutcomeInvalidDropTarget:
		a.setStatus("")
	}
	return a, nil
}
