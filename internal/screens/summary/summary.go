package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnlab/internal/router"
	"github.com/abhisek/learnlab/internal/screen"
	"github.com/abhisek/learnlab/internal/session"
	"github.com/abhisek/learnlab/internal/ui/components"
	"github.com/abhisek/learnlab/internal/ui/layout"
	"github.com/abhisek/learnlab/internal/ui/theme"
)

// SummaryScreen reviews a finished quiz.
type SummaryScreen struct {
	summary *session.QuizSummary
	retake  func() screen.Screen
	scroll  int
	height  int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. retake builds a fresh quiz screen; it may
// be nil.
func New(summary *session.QuizSummary, retake func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{summary: summary, retake: retake}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Back to plan"},
	}
	if s.retake != nil {
		hints = append(hints, layout.KeyHint{Key: "r", Description: "Retake"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r":
			if s.retake == nil {
				return s, nil
			}
			next := s.retake()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		case "up", "k":
			s.scroll--
		case "down", "j":
			s.scroll++
		case "pgup":
			s.scroll -= max(s.height/2, 1)
		case "pgdown":
			s.scroll += max(s.height/2, 1)
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	s.height = height
	cw := components.ContentWidth(width)

	var b strings.Builder

	// Title.
	b.WriteString(lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(headline(sum)))
	b.WriteString("\n")
	if sum.ModuleTitle != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(sum.ModuleTitle))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Stats line.
	statsLine := fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.0f%%",
		sum.Total, sum.Correct, sum.Accuracy*100)
	b.WriteString(lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	// Review divider.
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Review"))
	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("\n\n")

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	for i, item := range sum.Items {
		mark := theme.Correct.Render("✓")
		if !item.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		b.WriteString(mark + " " + lipgloss.NewStyle().Bold(true).Width(cw-2).
			Render(fmt.Sprintf("%d. %s", i+1, item.Question)))
		b.WriteString("\n")

		chosen := item.Chosen
		if chosen == "" {
			chosen = "(no answer)"
		}
		b.WriteString(dim.Render("  Your answer: ") + chosen + "\n")
		if !item.Correct {
			b.WriteString(dim.Render("  Correct:     ") + theme.Correct.Render(item.Answer) + "\n")
		}
		if item.Explanation != "" {
			b.WriteString(dim.Width(cw - 2).Render("  " + item.Explanation))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	visible, offset := layout.Window(strings.TrimRight(b.String(), "\n"), s.scroll, height)
	s.scroll = offset
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, visible)
}

func headline(sum *session.QuizSummary) string {
	switch {
	case sum.Total > 0 && sum.Correct == sum.Total:
		return "Perfect score!"
	case sum.Accuracy >= 0.6:
		return "Quiz complete. Nice work!"
	}
	return "Quiz complete. Review and try again."
}
