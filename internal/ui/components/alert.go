package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnlab/internal/ui/theme"
)

// Alert is a blocking notification. While visible it swallows key presses
// until the learner dismisses it with enter or esc.
type Alert struct {
	Title   string
	Message string
	visible bool
}

// Show makes the alert visible with the given text.
func (a *Alert) Show(title, message string) {
	a.Title = title
	a.Message = message
	a.visible = true
}

// Visible reports whether the alert is showing.
func (a Alert) Visible() bool {
	return a.visible
}

// Update consumes key presses while visible. It reports whether msg was
// handled by the alert.
func (a Alert) Update(msg tea.Msg) (Alert, bool) {
	if !a.visible {
		return a, false
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return a, false
	}
	switch kmsg.String() {
	case "enter", "esc", "space":
		a.visible = false
	}
	return a, true
}

// View renders the alert centered in a width x height area.
func (a Alert) View(width, height int) string {
	boxWidth := width / 2
	if boxWidth < 36 {
		boxWidth = 36
	}
	title := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("⚠ " + a.Title)
	msg := lipgloss.NewStyle().Foreground(theme.Text).Width(boxWidth - 8).Render(a.Message)
	hint := theme.Hint.Render("enter to dismiss")
	box := theme.Alert.Width(boxWidth).Render(title + "\n\n" + msg + "\n\n" + hint)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
