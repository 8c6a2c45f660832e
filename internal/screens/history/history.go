package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnlab/internal/router"
	"github.com/abhisek/learnlab/internal/screen"
	"github.com/abhisek/learnlab/internal/screens/deps"
	"github.com/abhisek/learnlab/internal/store"
	"github.com/abhisek/learnlab/internal/ui/layout"
	"github.com/abhisek/learnlab/internal/ui/theme"
)

const historyLimit = 50

type historyLoadedMsg struct {
	Calls []store.CallEvent
	Err   error
}

// HistoryScreen lists recent backend calls from the call log.
type HistoryScreen struct {
	deps     *deps.Deps
	calls    []store.CallEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
	scroll   int
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(d *deps.Deps) *HistoryScreen {
	return &HistoryScreen{
		deps:     d,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo, ctx := s.deps.Calls, s.deps.Context()
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		calls, err := repo.QueryCalls(ctx, store.QueryOpts{Limit: historyLimit})
		return historyLoadedMsg{Calls: calls, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Call History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.calls = msg.Calls
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.calls)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if s.deps.Calls == nil {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  The call log is disabled.")
	}
	if len(s.calls) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No calls yet. Create a plan to get started!")
	}

	var lines []string
	selectedLine := 0
	for i, c := range s.calls {
		status := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		if !c.Success {
			status = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
			selectedLine = len(lines)
		}

		line := fmt.Sprintf("%s%s  %-14s  %4d  %6dms",
			prefix, c.Timestamp.Local().Format("Jan 02 15:04:05"), c.Operation, c.StatusCode, c.LatencyMs)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		lines = append(lines, style.Render(line)+"  "+status)

		// Show expanded call details.
		if s.expanded[i] {
			dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
			if c.RequestID != "" {
				lines = append(lines, dim.Render("      request "+c.RequestID))
			}
			if c.ErrorMessage != "" {
				lines = append(lines, lipgloss.NewStyle().Foreground(theme.Error).Render("      "+c.ErrorMessage))
			}
			if c.RequestBody != "" {
				lines = append(lines, dim.Render("      "+truncate(c.RequestBody, width-12)))
			}
		}
	}

	// Keep the selection on screen.
	if selectedLine < s.scroll {
		s.scroll = selectedLine
	} else if height > 0 && selectedLine >= s.scroll+height {
		s.scroll = selectedLine - height + 1
	}
	visible, offset := layout.Window(strings.Join(lines, "\n"), s.scroll, height)
	s.scroll = offset
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, visible)
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if n < 4 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
