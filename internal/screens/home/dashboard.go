package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnlab/internal/gateway"
	"github.com/abhisek/learnlab/internal/ui/theme"
)

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 26

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderTitle(cw int) string {
	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("L E A R N L A B")
	sub := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Render("plan it, learn it, quiz it")
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(title + "\n" + sub)
}

// renderPlanCard summarizes the loaded plan, or invites the learner to
// create one.
func renderPlanCard(plan *gateway.StudyPlan, day, total int, cw int) string {
	var body string
	if plan == nil {
		body = lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("No study plan yet. Create one to get started.")
	} else {
		subject := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(plan.Subject)
		meta := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("%s · %s", plan.Level, plan.Theme()))
		progress := lipgloss.NewStyle().Foreground(theme.Secondary).Render(
			fmt.Sprintf("Day %d of %d", day, total))
		body = subject + "\n" + meta + "\n" + progress
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(body)
}

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(labels []string, selected int, disabled map[int]bool, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.Text).
		Background(theme.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	disabledBtn := normalBtn.Foreground(theme.TextDim)

	var buttons []string
	for i, label := range labels {
		switch {
		case disabled[i]:
			buttons = append(buttons, disabledBtn.Render(label))
		case i == selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		default:
			buttons = append(buttons, normalBtn.Render(label))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderStatus renders the one-line backend check result.
func renderStatus(text string, ok bool, cw int) string {
	style := lipgloss.NewStyle().Foreground(theme.Success)
	icon := "● "
	if !ok {
		style = style.Foreground(theme.Error)
		icon = "✗ "
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(icon + text))
}

// renderFrame wraps content in a double-border frame, centered within the
// given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
