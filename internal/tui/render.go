package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/pickboard/internal/database/repository"
	"github.com/jask/pickboard/internal/service"
	"github.com/jask/pickboard/widgets"
)

const (
	pickColumn    = 3
	pickSplit     = 10 // visitor half of the pick column
	kickoffLayout = "Mon 01/02 3:04 PM"
)

var boardColumns = []widgets.Column{
	{Title: "#", Width: 3},
	{Title: "Matchup", Width: 29},
	{Title: "Kickoff", Width: 18},
	{Title: "Pick", Width: 21},
}

var startedColumns = []widgets.Column{
	{Title: "Matchup", Width: 29},
	{Title: "Kickoff", Width: 18},
	{Title: "Result", Width: 14},
}

func (a *App) boardTable() widgets.Table {
	t := widgets.Table{Columns: boardColumns, Gap: 1}
	for _, r := range a.board.rows {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%2d", r.Confidence),
			matchup(r.Game),
			r.Game.Kickoff.In(a.tz).Format(kickoffLayout),
			pickCell(r),
		})
	}
	return t
}

func matchup(g repository.Game) string {
	return g.Visitor.Name + " at " + g.Home.Name
}

func pickCell(r pickRow) string {
	mark := func(on bool) string {
		if on {
			return "(•) "
		}
		return "( ) "
	}
	visitor := mark(r.Pick == service.PickVisitor) + r.Game.Visitor.Code
	home := mark(r.Pick == service.PickHome) + r.Game.Home.Code
	return widgets.PadRight(visitor, pickSplit) + home
}

func (a *App) View() string {
	title := titleStyle.Render(fmt.Sprintf("Pickboard · Week %d", a.week))
	lines := []string{title, ""}
	lines = append(lines, a.renderBoard()...)
	if len(a.started) > 0 {
		lines = append(lines, "", sectionStyle.Render("Started"))
		lines = append(lines, a.renderStarted()...)
	}
	lines = append(lines, "", a.renderStatus(), a.renderHelp())
	base := strings.Join(lines, "\n")

	if a.modal == modalNone {
		return base
	}
	w, h := a.width, a.height
	if w <= 0 || h <= 0 {
		w, h = 80, max(24, len(lines))
	}
	return widgets.RenderModal(base, a.renderModal(), w, h)
}

func (a *App) renderBoard() []string {
	if !a.loaded {
		return []string{rowStyle.Render("loading...")}
	}
	if len(a.board.rows) == 0 {
		return []string{headerStyle.Render(a.boardTable().Header()), placeholderStyle.Render("no open games this week")}
	}
	tbl := a.boardTable()
	hover := a.hovered()
	out := make([]string, a.vp.height)
	for k := range out {
		i := a.vp.rowAtSlot(k)
		switch {
		case i < 0:
			out[k] = ""
		case i == 0:
			out[k] = headerStyle.Render(tbl.Header())
		case a.lift.active && i == a.lift.row:
			out[k] = placeholderStyle.Render(strings.Repeat("┄", tbl.Width()))
		case i == hover && !a.lift.active:
			out[k] = hoverRowStyle.Render(tbl.Line(tbl.Rows[i-1]))
		default:
			out[k] = rowStyle.Render(tbl.Line(tbl.Rows[i-1]))
		}
	}
	if a.lift.active {
		if line, ok := a.vp.screenLine(a.lift.row); ok {
			slot := min(max(0, line-a.vp.top+a.lift.dy), len(out)-1)
			out[slot] = liftedRowStyle.Render(tbl.Line(tbl.Rows[a.lift.row-1]))
		}
	}
	return out
}

func (a *App) renderStarted() []string {
	t := widgets.Table{Columns: startedColumns, Gap: 1}
	for _, g := range a.started {
		t.Rows = append(t.Rows, []string{matchup(g), g.Kickoff.In(a.tz).Format(kickoffLayout), result(g)})
	}
	lines := t.Lines()
	out := make([]string, len(lines))
	out[0] = headerStyle.Render(lines[0])
	for i := 1; i < len(lines); i++ {
		out[i] = startedRowStyle.Render(lines[i])
	}
	return out
}

func result(g repository.Game) string {
	switch g.Status {
	case repository.StatusFinished:
		return fmt.Sprintf("Final %d-%d", g.VisitorScore, g.HomeScore)
	case repository.StatusInProgress:
		return fmt.Sprintf("Live %d-%d", g.VisitorScore, g.HomeScore)
	}
	return "Kicked off"
}

func (a *App) renderStatus() string {
	if a.statusErr {
		return statusErrStyle.Render(a.status)
	}
	if a.drag.Active() {
		return warnStyle.Render(a.status + "  [esc] cancel")
	}
	if a.status == "" {
		return placeholderStyle.Render(fmt.Sprintf("%d/%d picked", a.board.picked(), len(a.board.rows)))
	}
	return statusStyle.Render(a.status)
}

func (a *App) renderHelp() string {
	scope := scopeBoard
	if a.modal != modalNone {
		scope = scopeModal
	}
	bindings := a.keys.HelpBindings(scope)
	if a.showHelp {
		return a.help.FullHelpView([][]key.Binding{bindings})
	}
	return a.help.ShortHelpView(bindings)
}

func (a *App) renderModal() widgets.Box {
	b := a.ballot
	if b == nil {
		return widgets.Box{}
	}
	var sb strings.Builder
	for _, s := range b.Selections {
		fmt.Fprintf(&sb, "%s  %s\n", confidenceStyle.Render(fmt.Sprintf("%2d", s.Confidence)), pickedStyle.Render(s.Team))
	}
	where := "printed on exit"
	if p := a.cfg.Ballot.Path; p != "" && p != "-" {
		where = "saved to " + ansi.Truncate(p, 40, "…")
	}
	sb.WriteString("\n" + where + "\n[esc] close")
	return widgets.Box{Title: fmt.Sprintf("Week %d ballot", b.Week), Body: sb.String(), Border: colorLavender}
}
