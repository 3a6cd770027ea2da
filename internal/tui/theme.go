package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the board uses.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
)

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
	colorMuted   = colorOverlay1
)

var (
	titleStyle       = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	headerStyle      = lipgloss.NewStyle().Foreground(colorText).Bold(true).Underline(true)
	rowStyle         = lipgloss.NewStyle().Foreground(colorText)
	hoverRowStyle    = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface0)
	liftedRowStyle   = lipgloss.NewStyle().Foreground(colorFocus).Background(colorSurface1).Bold(true)
	placeholderStyle = lipgloss.NewStyle().Foreground(colorOverlay0)
	confidenceStyle  = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)
	pickedStyle      = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	sectionStyle     = lipgloss.NewStyle().Foreground(colorInfo).Bold(true)
	startedRowStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	statusStyle      = lipgloss.NewStyle().Foreground(colorSuccess)
	statusErrStyle   = lipgloss.NewStyle().Foreground(colorError)
	warnStyle        = lipgloss.NewStyle().Foreground(colorWarning)
)
