package widgets

import "github.com/charmbracelet/lipgloss"

var boxTitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

// Box is a rounded card sized to its content. A title sits a blank line
// above the body.
type Box struct {
	Title  string
	Body   string
	Border lipgloss.Color
}

func (b Box) Render() string {
	style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	if b.Border != "" {
		style = style.BorderForeground(b.Border)
	}
	body := b.Body
	if b.Title != "" {
		body = boxTitleStyle.Render(b.Title) + "\n\n" + body
	}
	return style.Render(body)
}
