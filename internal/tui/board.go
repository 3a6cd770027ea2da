package tui

import (
	"time"

	"github.com/jask/pickboard/internal/database/repository"
	"github.com/jask/pickboard/internal/dragrow"
	"github.com/jask/pickboard/internal/service"
)

// pickRow is one open game on the board. Confidence is the control-cell
// value; it always equals the row's position.
type pickRow struct {
	Game       repository.Game
	Pick       service.Side
	Confidence int
}

// board is the dragrow.Table over the open games. Position 0 is the
// header, so rows[i-1] sits at position i.
type board struct {
	rows []pickRow
}

var _ dragrow.Table = (*board)(nil)

func (b *board) Len() int { return len(b.rows) + 1 }

func (b *board) Swap(i, j int) {
	b.rows[i-1], b.rows[j-1] = b.rows[j-1], b.rows[i-1]
}

func (b *board) Label(i int) int {
	if i == 0 {
		return 0
	}
	return b.rows[i-1].Confidence
}

func (b *board) SetLabel(i, v int) {
	if i == 0 {
		return
	}
	b.rows[i-1].Confidence = v
}

// row returns the row at position i, or nil for the header and out-of-range.
func (b *board) row(i int) *pickRow {
	if i < 1 || i > len(b.rows) {
		return nil
	}
	return &b.rows[i-1]
}

// load replaces the rows with the week's open games in schedule order and
// returns the games that are already closed. Every row starts on the visitor.
func (b *board) load(games []repository.Game, now time.Time) []repository.Game {
	b.rows = b.rows[:0]
	var started []repository.Game
	for _, g := range games {
		if g.Started(now) {
			started = append(started, g)
			continue
		}
		b.rows = append(b.rows, pickRow{Game: g, Pick: service.PickVisitor})
	}
	dragrow.Renumber(b)
	return started
}

// expire moves rows whose games have kicked off out of the board, keeping
// the relative order of the rest. It returns the removed games.
func (b *board) expire(now time.Time) []repository.Game {
	var gone []repository.Game
	kept := b.rows[:0]
	for _, r := range b.rows {
		if r.Game.Started(now) {
			gone = append(gone, r.Game)
			continue
		}
		kept = append(kept, r)
	}
	b.rows = kept
	if len(gone) > 0 {
		dragrow.Renumber(b)
	}
	return gone
}

func (b *board) entries() []service.Entry {
	out := make([]service.Entry, 0, len(b.rows))
	for _, r := range b.rows {
		out = append(out, service.Entry{GameID: r.Game.ID, Pick: r.Pick, Confidence: r.Confidence})
	}
	return out
}

func (b *board) picked() int {
	n := 0
	for _, r := range b.rows {
		if r.Pick != service.NoPick {
			n++
		}
	}
	return n
}
