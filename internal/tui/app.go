package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/pickboard/internal/config"
	"github.com/jask/pickboard/internal/database/repository"
	"github.com/jask/pickboard/internal/dragrow"
	"github.com/jask/pickboard/internal/service"
)

const (
	boardTop     = 2 // title, blank
	tickInterval = time.Minute
)

// App is the pick board: the week's open games as draggable rows, the
// started games below them, and a status/help footer.
type App struct {
	ctx      context.Context
	cfg      config.Config
	repos    Repos
	services Services
	log      *zap.Logger
	tz       *time.Location
	now      func() time.Time
	week     int

	keys     *KeyRegistry
	help     help.Model
	showHelp bool

	board   *board
	vp      *viewport
	drag    *dragrow.Controller
	lift    lift
	started []repository.Game

	pointer    dragrow.Point
	hasPointer bool

	width, height int
	loaded        bool
	status        string
	statusErr     bool
	modal         modalState
	ballot        *service.Ballot
}

type Repos struct {
	Games *repository.GameRepo
}

type Services struct {
	Ballot *service.BallotService
}

type modalState string

const (
	modalNone   modalState = ""
	modalBallot modalState = "ballot"
)

// lift is the visual offset of the dragged row.
type lift struct {
	row    int
	dy     int
	active bool
}

type (
	errMsg         struct{ error }
	statusMsg      string
	weekMsg        []repository.Game
	weekChangedMsg struct {
		week  int
		games []repository.Game
	}
	ballotMsg      struct{ Ballot service.Ballot }
	ballotSavedMsg struct{ Path string }
	tickMsg        time.Time
)

func New(ctx context.Context, cfg config.Config, repos Repos, services Services, log *zap.Logger, tz *time.Location) (*App, error) {
	if tz == nil {
		tz = time.Local
	}
	if log == nil {
		log = zap.NewNop()
	}
	keys := NewKeyRegistry()
	if err := keys.ApplyKeybindingConfig(cfg.Keys); err != nil {
		return nil, err
	}
	a := &App{
		ctx:      ctx,
		cfg:      cfg,
		repos:    repos,
		services: services,
		log:      log,
		tz:       tz,
		now:      time.Now,
		week:     cfg.Board.Week,
		keys:     keys,
		help:     help.New(),
		board:    &board{},
		lift:     lift{row: -1},
	}
	a.vp = &viewport{b: a.board, top: boardTop, sticky: cfg.Board.HeaderSticky}
	a.drag = dragrow.New(a.board, a.vp,
		dragrow.WithTransformer(a),
		dragrow.WithLogger(log.Named("drag")))
	a.drag.Attach()
	a.layout()
	return a, nil
}

// Ballot is the last ballot built this session, if any.
func (a *App) Ballot() *service.Ballot { return a.ballot }

// Translate and Reset make the App the drag transformer. Only the vertical
// offset is drawn.
func (a *App) Translate(row, _, dy int) { a.lift = lift{row: row, dy: dy, active: true} }
func (a *App) Reset(int)                { a.lift = lift{row: -1} }

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadWeek(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (a *App) loadWeek() tea.Cmd {
	week := a.week
	return func() tea.Msg {
		games, err := a.repos.Games.ListWeek(a.ctx, week)
		if err != nil {
			return errMsg{fmt.Errorf("load week %d: %w", week, err)}
		}
		return weekMsg(games)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		a.layout()
	case tea.KeyMsg:
		return a.handleKey(m)
	case tea.MouseMsg:
		return a.handleMouse(m)
	case tea.BlurMsg:
		if a.cfg.Board.CancelOnBlur {
			a.cancelDrag()
		}
	case weekMsg:
		a.drag.Cancel()
		a.started = a.board.load([]repository.Game(m), a.now())
		a.loaded = true
		a.layout()
		a.setStatus(fmt.Sprintf("week %d: %d open, %d started", a.week, len(a.board.rows), len(a.started)))
		a.log.Info("week loaded", zap.Int("week", a.week), zap.Int("open", len(a.board.rows)), zap.Int("started", len(a.started)))
	case weekChangedMsg:
		a.week = m.week
		a.ballot = nil
		a.vp.scroll = 0
		return a.Update(weekMsg(m.games))
	case tickMsg:
		if gone := a.board.expire(a.now()); len(gone) > 0 {
			a.drag.Cancel()
			a.started = append(a.started, gone...)
			a.layout()
			a.setStatus(fmt.Sprintf("%d game(s) kicked off", len(gone)))
		}
		return a, tick()
	case ballotMsg:
		b := m.Ballot
		a.ballot = &b
		a.modal = modalBallot
		a.log.Info("ballot submitted", zap.Int("week", b.Week), zap.Int("picks", len(b.Selections)))
		if path := a.cfg.Ballot.Path; path != "" && path != "-" {
			return a, a.saveBallotCmd(path, b)
		}
		a.setStatus("ballot ready; printed on exit")
	case ballotSavedMsg:
		a.setStatus("ballot saved to " + m.Path)
	case statusMsg:
		a.setStatus(string(m))
	case errMsg:
		a.status = "error: " + m.Error()
		a.statusErr = true
		a.log.Warn("operation failed", zap.Error(m.error))
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	scope := scopeBoard
	if a.modal != modalNone {
		scope = scopeModal
	}
	b := a.keys.Lookup(m.String(), scope)
	if b == nil {
		return a, nil
	}
	switch b.Action {
	case actionQuit:
		a.drag.Detach()
		return a, tea.Quit
	case actionHelp:
		a.showHelp = !a.showHelp
	case actionClose:
		a.modal = modalNone
	case actionCancel:
		a.cancelDrag()
	case actionScrollDown:
		if !a.drag.Active() {
			a.vp.scrollBy(1)
		}
	case actionScrollUp:
		if !a.drag.Active() {
			a.vp.scrollBy(-1)
		}
	case actionPickVisitor:
		a.pickHovered(service.PickVisitor)
	case actionPickHome:
		a.pickHovered(service.PickHome)
	case actionReload:
		if !a.drag.Active() {
			return a, a.loadWeek()
		}
	case actionPrevWeek, actionNextWeek:
		if a.drag.Active() {
			return a, nil
		}
		step := 1
		if b.Action == actionPrevWeek {
			step = -1
		}
		return a, a.stepWeekCmd(step)
	case actionSubmit:
		if a.drag.Active() {
			return a, nil
		}
		return a, a.submitCmd()
	}
	return a, nil
}

// stepWeekCmd loads the nearest scheduled week before (step < 0) or after
// the current one.
func (a *App) stepWeekCmd(step int) tea.Cmd {
	cur := a.week
	return func() tea.Msg {
		weeks, err := a.repos.Games.Weeks(a.ctx)
		if err != nil {
			return errMsg{fmt.Errorf("list weeks: %w", err)}
		}
		next, ok := adjacentWeek(weeks, cur, step)
		if !ok {
			if step < 0 {
				return statusMsg(fmt.Sprintf("no week before %d", cur))
			}
			return statusMsg(fmt.Sprintf("no week after %d", cur))
		}
		games, err := a.repos.Games.ListWeek(a.ctx, next)
		if err != nil {
			return errMsg{fmt.Errorf("load week %d: %w", next, err)}
		}
		return weekChangedMsg{week: next, games: games}
	}
}

// adjacentWeek picks from ascending weeks the closest one past cur in the
// direction of step.
func adjacentWeek(weeks []int, cur, step int) (int, bool) {
	if step > 0 {
		for _, w := range weeks {
			if w > cur {
				return w, true
			}
		}
		return 0, false
	}
	for i := len(weeks) - 1; i >= 0; i-- {
		if weeks[i] < cur {
			return weeks[i], true
		}
	}
	return 0, false
}

// cancelDrag drops the held row back into its slot.
func (a *App) cancelDrag() {
	res := a.drag.Cancel()
	if res.Outcome != dragrow.OutcomeCancelled {
		return
	}
	if r := a.board.row(res.From); r != nil {
		a.setStatus(fmt.Sprintf("drag cancelled; %s at %s stays #%d", r.Game.Visitor.Name, r.Game.Home.Name, r.Confidence))
		return
	}
	a.setStatus("drag cancelled")
}

func (a *App) submitCmd() tea.Cmd {
	if len(a.board.rows) == 0 {
		a.setStatus("no open games to pick")
		return nil
	}
	entries := a.board.entries()
	week, now := a.week, a.now()
	return func() tea.Msg {
		b, err := a.services.Ballot.Build(a.ctx, week, entries, now)
		if err != nil {
			return errMsg{err}
		}
		return ballotMsg{Ballot: b}
	}
}

func (a *App) saveBallotCmd(path string, b service.Ballot) tea.Cmd {
	return func() tea.Msg {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return errMsg{fmt.Errorf("ballot dir: %w", err)}
		}
		f, err := os.Create(path)
		if err != nil {
			return errMsg{fmt.Errorf("create ballot: %w", err)}
		}
		if err := a.services.Ballot.Export(f, b); err != nil {
			_ = f.Close()
			return errMsg{err}
		}
		if err := f.Close(); err != nil {
			return errMsg{fmt.Errorf("close ballot: %w", err)}
		}
		return ballotSavedMsg{Path: path}
	}
}

// hovered is the data row under the last pointer position, or -1.
func (a *App) hovered() int {
	if !a.hasPointer {
		return -1
	}
	i := dragrow.RowAt(a.vp, a.pointer)
	if i < 1 {
		return -1
	}
	return i
}

func (a *App) pickHovered(side service.Side) {
	r := a.board.row(a.hovered())
	if r == nil {
		a.setStatus("point at a game to pick it")
		return
	}
	a.setPick(r, side)
}

func (a *App) setPick(r *pickRow, side service.Side) {
	r.Pick = side
	team := r.Game.Home
	if side == service.PickVisitor {
		team = r.Game.Visitor
	}
	a.setStatus(fmt.Sprintf("picked %s (%d/%d)", team.Name, a.board.picked(), len(a.board.rows)))
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

// layout sizes the board viewport to the window. Without a window size the
// whole board is shown.
func (a *App) layout() {
	tbl := a.boardTable()
	a.vp.width = tbl.Width()
	a.vp.edge = tbl.Offsets()[pickColumn]

	n := a.board.Len()
	if a.height <= 0 {
		a.vp.height = n
		a.vp.clamp()
		return
	}
	reserved := boardTop + 3 // blank, status, help
	if len(a.started) > 0 {
		reserved += 3 + len(a.started)
	}
	a.vp.height = min(max(2, a.height-reserved), n)
	a.vp.clamp()
}
