package tui

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jask/pickboard/internal/config"
	"github.com/jask/pickboard/internal/database"
	"github.com/jask/pickboard/internal/database/repository"
	"github.com/jask/pickboard/internal/dragrow"
	"github.com/jask/pickboard/internal/service"
)

var testNow = time.Date(2026, 9, 12, 12, 0, 0, 0, time.UTC)

var slate = [][2]repository.Team{
	{{Code: "BUF", Name: "Bills"}, {Code: "NYJ", Name: "Jets"}},
	{{Code: "DAL", Name: "Cowboys"}, {Code: "NYG", Name: "Giants"}},
	{{Code: "GB", Name: "Packers"}, {Code: "CHI", Name: "Bears"}},
	{{Code: "KC", Name: "Chiefs"}, {Code: "DEN", Name: "Broncos"}},
	{{Code: "SF", Name: "49ers"}, {Code: "SEA", Name: "Seahawks"}},
}

func testGames() []repository.Game {
	var out []repository.Game
	for i, pair := range slate {
		out = append(out, repository.Game{
			ID:        pair[0].Code + "@" + pair[1].Code,
			Week:      1,
			Visitor:   pair[0],
			Home:      pair[1],
			Kickoff:   testNow.Add(time.Duration(i+1) * time.Hour),
			Status:    repository.StatusFuture,
			SortOrder: i,
		})
	}
	return out
}

func newTestApp(t *testing.T, cfg config.Config, games []repository.Game) *App {
	t.Helper()
	if cfg.Board.Week == 0 {
		cfg.Board.Week = 1
	}
	a, err := New(context.Background(), cfg, Repos{}, Services{}, zaptest.NewLogger(t), time.UTC)
	require.NoError(t, err)
	a.now = func() time.Time { return testNow }
	a.Update(weekMsg(games))
	return a
}

func mouse(action tea.MouseAction, button tea.MouseButton, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func press(x, y int) tea.MouseMsg { return mouse(tea.MouseActionPress, tea.MouseButtonLeft, x, y) }
func motion(x, y int) tea.MouseMsg {
	return mouse(tea.MouseActionMotion, tea.MouseButtonLeft, x, y)
}
func release(x, y int) tea.MouseMsg {
	return mouse(tea.MouseActionRelease, tea.MouseButtonNone, x, y)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func order(a *App) []string {
	var out []string
	for _, r := range a.board.rows {
		out = append(out, r.Game.Visitor.Code)
	}
	return out
}

func confidences(a *App) []int {
	var out []int
	for _, r := range a.board.rows {
		out = append(out, r.Confidence)
	}
	return out
}

func screen(a *App) []string {
	return strings.Split(ansi.Strip(a.View()), "\n")
}

// Row i of the board is drawn on screen line boardTop+i when unscrolled.
func rowY(i int) int { return boardTop + i }

func TestDragReordersRowsAndRenumbers(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, config.Config{}, testGames())
	require.Equal(t, []string{"BUF", "DAL", "GB", "KC", "SF"}, order(a))

	a.Update(press(5, rowY(2)))
	require.True(t, a.drag.Active())
	a.Update(motion(5, rowY(4)))
	a.Update(release(5, rowY(4)))

	require.False(t, a.drag.Active())
	require.Equal(t, []string{"BUF", "GB", "KC", "DAL", "SF"}, order(a))
	require.Equal(t, []int{1, 2, 3, 4, 5}, confidences(a))
	require.Contains(t, a.status, "Cowboys at Giants is now #4")

	lines := screen(a)
	require.True(t, strings.HasPrefix(lines[rowY(4)], " 4  Cowboys at Giants"), lines[rowY(4)])
}

func TestDragUpMovesRowAboveTarget(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, config.Config{}, testGames())

	a.Update(press(2, rowY(5)))
	a.Update(motion(2, rowY(1)))
	a.Update(release(2, rowY(1)))
	require.Equal(t, []string{"SF", "BUF", "DAL", "GB", "KC"}, order(a))
	require.Equal(t, []int{1, 2, 3, 4, 5}, confidences(a))
}

func TestDraggedRowRendersDisplaced(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, config.Config{}, testGames())

	a.Update(press(5, rowY(1)))
	a.Update(motion(9, rowY(3)))

	row, dy, ok := a.drag.Translation()
	require.True(t, ok)
	require.Equal(t, 1, row)
	require.Equal(t, 2, dy)
	require.Equal(t, lift{row: 1, dy: 2, active: true}, a.lift)

	lines := screen(a)
	require.True(t, strings.HasPrefix(lines[rowY(1)], "┄┄┄"), lines[rowY(1)])
	require.Contains(t, lines[rowY(3)], "Bills at Jets")
	require.Contains(t, lines[rowY(2)], "Cowboys at Giants")
	require.Equal(t, []string{"BUF", "DAL", "GB", "KC", "SF"}, order(a), "order changes only on release")
}

func TestPickColumnClickSelectsTeamWithoutDragging(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, config.Config{}, testGames())
	edge := a.vp.edge

	a.Update(press(edge, rowY(1)))
	require.False(t, a.drag.Active())
	require.Equal(t, service.PickVisitor, a.board.rows[0].Pick)

	a.Update(press(edge+pickSplit+1, rowY(1)))
	require.Equal(t, service.PickHome, a.board.rows[0].Pick)
	a.Update(release(edge+pickSplit+1, rowY(1)))

	require.Contains(t, screen(a)[rowY(1)], "( ) BUF   (•) NYJ")
	require.Equal(t, []string{"BUF", "DAL", "GB", "KC", "SF"}, order(a))
}

func TestHeaderAndOutsidePressesNeverDrag(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, config.Config{}, testGames())

	a.Update(press(5, rowY(0)))
	require.False(t, a.drag.Active())
	a.Update(press(5, rowY(9)))
	require.False(t, a.drag.Active())
	a.Update(press(a.vp.width+2, rowY(2)))
	require.False(t, a.drag.Active())
}

func TestDropOnHeaderOrOutsideKeepsOrder(t *testing.T) {
	t.Parallel()
	for _, y := range []int{rowY(0), rowY(12), 0} {
		a := newTestApp(t, config.Config{}, testGames())
		a.Update(press(5, rowY(3)))
		a.Update(motion(5, y))
		a.Update(release(5, y))
		require.False(t, a.drag.Active())
		require.False(t, a.lift.active)
		require.Equal(t, []string{"BUF", "DAL", "GB", "KC", "SF"}, order(a), "y=%d", y)
	}
}

func TestEscCancelsDrag(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, config.Config{}, testGames())

	a.Update(press(5, rowY(2)))
	a.Update(motion(5, rowY(5)))
	a.Update(keyMsg("esc"))
	require.False(t, a.drag.Active())
	require.False(t, a.lift.active)
	require.Equal(t, "drag cancelled; Cowboys at Giants stays #2", a.status)

	a.Update(release(5, rowY(5)))
	require.Equal(t, []string{"BUF", "DAL", "GB", "KC", "SF"}, order(a))
}

func TestBlurCancelsDragWhenConfigured(t *testing.T) {
	t.Parallel()
	cfg := config.Config{Board: config.BoardConfig{CancelOnBlur: true}}
	a := newTestApp(t, cfg, testGames())
	a.Update(press(5, rowY(2)))
	a.Update(tea.BlurMsg{})
	require.False(t, a.drag.Active())

	b := newTestApp(t, config.Config{}, testGames())
	b.Update(press(5, rowY(2)))
	b.Update(tea.BlurMsg{})
	require.True(t, b.drag.Active())
}

func TestWheelScrollsOnlyWhenIdle(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, config.Config{}, testGames())
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 9})
	require.Equal(t, 4, a.vp.height)

	a.Update(mouse(tea.MouseActionPress, tea.MouseButtonWheelDown, 5, rowY(1)))
	require.Equal(t, 1, a.vp.scroll)
	require.Contains(t, screen(a)[boardTop], "Bills at Jets")

	// Screen line boardTop+1 now shows row 2.
	a.Update(press(5, boardTop+1))
	require.Equal(t, 2, a.drag.ActiveRow())
	a.Update(mouse(tea.MouseActionPress, tea.MouseButtonWheelDown, 5, boardTop+1))
	require.Equal(t, 1, a.vp.scroll)

	a.Update(motion(5, boardTop+3))
	a.Update(release(5, boardTop+3))
	require.Equal(t, []string{"BUF", "GB", "KC", "DAL", "SF"}, order(a))
}

func TestHiddenRowsAreNotDropTargets(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, config.Config{}, testGames())
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 9})

	// Row 5 sits below the visible board.
	a.Update(press(5, rowY(1)))
	a.Update(motion(5, rowY(5)))
	a.Update(release(5, rowY(5)))
	require.Equal(t, []string{"BUF", "DAL", "GB", "KC", "SF"}, order(a))
}

func TestStickyHeaderStaysOnTop(t *testing.T) {
	t.Parallel()
	cfg := config.Config{Board: config.BoardConfig{HeaderSticky: true}}
	a := newTestApp(t, cfg, testGames())
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 9})
	a.Update(keyMsg("j"))
	require.Equal(t, 1, a.vp.scroll)

	lines := screen(a)
	require.True(t, strings.HasPrefix(lines[boardTop], "#"), lines[boardTop])
	require.Contains(t, lines[boardTop+1], "Cowboys at Giants")

	a.Update(press(5, boardTop))
	require.False(t, a.drag.Active())
	a.Update(press(5, boardTop+1))
	require.Equal(t, 2, a.drag.ActiveRow())
}

func TestKeyPickUsesHoveredRow(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, config.Config{}, testGames())

	a.Update(keyMsg("v"))
	require.Equal(t, "point at a game to pick it", a.status)

	a.Update(motion(5, rowY(2)))
	require.False(t, a.drag.Active())
	a.Update(keyMsg("h"))
	require.Equal(t, service.PickHome, a.board.rows[1].Pick)
	require.Equal(t, "picked Giants (5/5)", a.status)
}

func TestTickMovesKickedOffGamesOffTheBoard(t *testing.T) {
	t.Parallel()
	games := testGames()
	final := games[0]
	final.ID = "final"
	final.Status = repository.StatusFinished
	final.VisitorScore, final.HomeScore = 24, 27
	a := newTestApp(t, config.Config{}, append(games, final))
	require.Len(t, a.board.rows, 5)
	require.Len(t, a.started, 1)

	a.Update(press(5, rowY(3)))
	a.now = func() time.Time { return testNow.Add(90 * time.Minute) }
	_, cmd := a.Update(tickMsg(a.now()))
	require.NotNil(t, cmd)

	require.False(t, a.drag.Active())
	require.Equal(t, []string{"DAL", "GB", "KC", "SF"}, order(a))
	require.Equal(t, []int{1, 2, 3, 4}, confidences(a))
	require.Len(t, a.started, 2)

	out := ansi.Strip(a.View())
	require.Contains(t, out, "Started")
	require.Contains(t, out, "Final 24-27")
	require.Contains(t, out, "Kicked off")
}

func TestQuitDetachesController(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, config.Config{}, testGames())
	a.Update(press(5, rowY(2)))
	_, cmd := a.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.False(t, a.drag.Attached())
	require.False(t, a.drag.Active())
}

func TestPointerFromMouse(t *testing.T) {
	t.Parallel()
	cases := []struct {
		msg   tea.MouseMsg
		phase dragrow.Phase
		ok    bool
	}{
		{press(1, 2), dragrow.PhaseStart, true},
		{motion(1, 2), dragrow.PhaseMove, true},
		{release(1, 2), dragrow.PhaseEnd, true},
		{mouse(tea.MouseActionPress, tea.MouseButtonRight, 1, 2), 0, false},
		{mouse(tea.MouseActionPress, tea.MouseButtonWheelUp, 1, 2), 0, false},
	}
	for _, tc := range cases {
		ev, ok := pointerFromMouse(tc.msg)
		require.Equal(t, tc.ok, ok)
		if ok {
			require.Equal(t, tc.phase, ev.Phase)
			require.Equal(t, dragrow.KindMouse, ev.Kind)
			require.Equal(t, dragrow.Point{X: 1, Y: 2}, ev.Pos)
		}
	}
}

func openGameRepo(t *testing.T) *repository.GameRepo {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.SeedDefaults(context.Background(), db))
	return repository.NewGameRepo(db)
}

func storeSlate(t *testing.T, games *repository.GameRepo, week int, pairs [][2]repository.Team) {
	t.Helper()
	for i, pair := range pairs {
		v, h := database.TeamID(pair[0].Code), database.TeamID(pair[1].Code)
		require.NoError(t, games.Upsert(context.Background(), repository.Game{
			ID: service.GameID(week, v, h), Week: week, VisitorID: v, HomeID: h,
			Kickoff: testNow.Add(time.Duration(i+1) * time.Hour), Status: repository.StatusFuture, SortOrder: i,
		}))
	}
}

func TestSubmitWritesBallot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	games := openGameRepo(t)
	storeSlate(t, games, 1, slate)

	ballotPath := filepath.Join(dir, "out", "ballot.json")
	cfg := config.Config{Board: config.BoardConfig{Week: 1}, Ballot: config.BallotConfig{Path: ballotPath}}
	log := zaptest.NewLogger(t)
	a, err := New(ctx, cfg, Repos{Games: games}, Services{Ballot: &service.BallotService{Games: games, Log: log}}, log, time.UTC)
	require.NoError(t, err)
	a.now = func() time.Time { return testNow }
	a.Update(a.loadWeek()())
	require.Len(t, a.board.rows, 5)

	// A game that kicked off since the board loaded cannot be submitted.
	a.now = func() time.Time { return testNow.Add(90 * time.Minute) }
	_, cmd := a.Update(keyMsg("s"))
	a.Update(cmd())
	require.True(t, a.statusErr)
	require.Contains(t, a.status, "game already started")
	a.now = func() time.Time { return testNow }

	a.Update(press(a.vp.edge+pickSplit, rowY(1)))
	a.Update(press(5, rowY(5)))
	a.Update(motion(5, rowY(1)))
	a.Update(release(5, rowY(1)))
	require.Equal(t, "Seahawks", a.board.rows[0].Game.Home.Name)

	_, cmd = a.Update(keyMsg("s"))
	_, save := a.Update(cmd())
	require.Equal(t, modalBallot, a.modal)
	require.NotNil(t, save)
	a.Update(save())
	require.Equal(t, "ballot saved to "+ballotPath, a.status)
	require.Contains(t, ansi.Strip(a.View()), "Week 1 ballot")

	data, err := os.ReadFile(ballotPath)
	require.NoError(t, err)
	var b service.Ballot
	require.NoError(t, json.Unmarshal(data, &b))
	require.Len(t, b.Selections, 5)
	require.Equal(t, 5, b.Selections[0].Confidence)
	require.Equal(t, "Chiefs", b.Selections[0].Team)
	require.Equal(t, "Jets", b.Selections[3].Team)
	require.Equal(t, 1, b.Selections[4].Confidence)
	require.Equal(t, "49ers", b.Selections[4].Team)

	a.Update(keyMsg("esc"))
	require.Equal(t, modalNone, a.modal)
}

func TestWeekKeysStepThroughScheduledWeeks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	games := openGameRepo(t)
	storeSlate(t, games, 1, slate)
	storeSlate(t, games, 4, slate[:2])

	cfg := config.Config{Board: config.BoardConfig{Week: 1}}
	a, err := New(ctx, cfg, Repos{Games: games}, Services{}, zaptest.NewLogger(t), time.UTC)
	require.NoError(t, err)
	a.now = func() time.Time { return testNow }
	a.Update(a.loadWeek()())
	require.Len(t, a.board.rows, 5)

	_, cmd := a.Update(keyMsg("["))
	a.Update(cmd())
	require.Equal(t, 1, a.week)
	require.Equal(t, "no week before 1", a.status)

	_, cmd = a.Update(keyMsg("]"))
	a.Update(cmd())
	require.Equal(t, 4, a.week)
	require.Len(t, a.board.rows, 2)
	require.Equal(t, []int{1, 2}, confidences(a))
	require.Contains(t, screen(a)[0], "Week 4")

	a.Update(press(5, rowY(1)))
	_, cmd = a.Update(keyMsg("["))
	require.Nil(t, cmd, "weeks do not change under a held row")
	a.Update(release(5, rowY(1)))

	_, cmd = a.Update(keyMsg("["))
	a.Update(cmd())
	require.Equal(t, 1, a.week)
	require.Len(t, a.board.rows, 5)
}

func TestAdjacentWeek(t *testing.T) {
	weeks := []int{1, 2, 5, 9}
	cases := []struct {
		cur, step, want int
		ok              bool
	}{
		{1, 1, 2, true},
		{2, 1, 5, true},
		{3, -1, 2, true},
		{9, 1, 0, false},
		{1, -1, 0, false},
		{7, 1, 9, true},
	}
	for _, tc := range cases {
		got, ok := adjacentWeek(weeks, tc.cur, tc.step)
		require.Equal(t, tc.ok, ok, "cur=%d step=%d", tc.cur, tc.step)
		require.Equal(t, tc.want, got, "cur=%d step=%d", tc.cur, tc.step)
	}
}
