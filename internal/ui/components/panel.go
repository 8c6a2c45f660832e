package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnlab/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for reading panes.
// Long lines are hard to follow, so it is capped.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 96 {
		w = 96
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Panel wraps content in a rounded card with an optional heading, at the
// given outer width.
func Panel(heading, content string, width int) string {
	body := content
	if heading != "" {
		body = theme.Heading.Render(heading) + "\n\n" + content
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width).
		Padding(0, 1).
		Render(body)
}

// ErrorPanel renders an inline failure message.
func ErrorPanel(msg string, width int) string {
	return theme.ErrorPanel.Width(width).Render("✗ " + msg)
}
