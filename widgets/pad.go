package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// PadRight truncates or pads s to exactly width cells, ANSI aware.
func PadRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
