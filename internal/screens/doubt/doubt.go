package doubt

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnlab/internal/gateway"
	"github.com/abhisek/learnlab/internal/screen"
	"github.com/abhisek/learnlab/internal/screens/deps"
	"github.com/abhisek/learnlab/internal/session"
	"github.com/abhisek/learnlab/internal/ui/components"
	"github.com/abhisek/learnlab/internal/ui/layout"
	"github.com/abhisek/learnlab/internal/ui/markdown"
	"github.com/abhisek/learnlab/internal/ui/theme"
)

// DoubtScreen answers free-form questions about the current module.
type DoubtScreen struct {
	deps     *deps.Deps
	moduleID int
	module   string
	input    components.TextInput
	md       markdown.Renderer
	alert    components.Alert
	scroll   int
	height   int
	spin     components.SpinnerClock
}

var _ screen.Screen = (*DoubtScreen)(nil)
var _ screen.KeyHintProvider = (*DoubtScreen)(nil)
var _ screen.Leaver = (*DoubtScreen)(nil)
var _ screen.Capturer = (*DoubtScreen)(nil)

// New creates a DoubtScreen for the current day's module.
func New(d *deps.Deps) *DoubtScreen {
	mod, _ := d.State.CurrentModule()
	return &DoubtScreen{
		deps:     d,
		moduleID: mod.ID,
		module:   mod.Task(),
		input:    components.NewTextInput("Your question", "What's confusing you?", false, 500),
	}
}

func (s *DoubtScreen) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *DoubtScreen) Title() string {
	return "Solve a Doubt"
}

func (s *DoubtScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Ask"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

// Leave drops the answer so a late response is discarded.
func (s *DoubtScreen) Leave() {
	s.deps.State.Doubt.Reset()
}

// CapturesInput reports whether an alert is waiting to be dismissed.
func (s *DoubtScreen) CapturesInput() bool {
	return s.alert.Visible()
}

func (s *DoubtScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var handled bool
	if s.alert, handled = s.alert.Update(msg); handled {
		return s, nil
	}

	switch msg := msg.(type) {
	case session.DoubtResult:
		s.scroll = 0
		if msg.Err != nil {
			s.alert.Show("Could not answer your question", gateway.UserMessage(msg.Err))
			return s, nil
		}
		s.input.Reset()
		return s, nil

	case components.SpinnerTickMsg:
		return s, s.spin.Update(msg, s.deps.State.Doubt.Loading())

	case tea.KeyPressMsg:
		switch msg.String() {
		case "pgup":
			s.scroll -= max(s.height/2, 1)
			return s, nil
		case "pgdown":
			s.scroll += max(s.height/2, 1)
			return s, nil
		case "enter":
			return s, s.ask()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *DoubtScreen) ask() tea.Cmd {
	if s.deps.State.Doubt.Loading() {
		return nil
	}
	fetch, err := session.RequestDoubtAnswer(s.deps.State, s.deps.Gateway, s.moduleID, s.input.Value())
	if err != nil {
		s.input.SetError("type a question first")
		return nil
	}
	return tea.Batch(s.deps.Cmd(fetch), s.spin.Start())
}

func (s *DoubtScreen) View(width, height int) string {
	if s.alert.Visible() {
		return s.alert.View(width, height)
	}
	s.height = height
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Ask anything about %s.", s.module)))
	sections = append(sections, s.input.View())

	slot := &s.deps.State.Doubt
	switch slot.Status() {
	case session.StatusLoading:
		sections = append(sections, components.Spinner(s.spin.Frame, "Thinking…"))
	case session.StatusReady:
		if ans := slot.Data(); ans != nil {
			q := theme.Question.Render("Q: " + slot.Key())
			sections = append(sections, components.Panel("Answer", q+"\n\n"+s.md.Render(ans.Answer, cw-4), cw))
		}
	}

	visible, offset := layout.Window(strings.Join(sections, "\n\n"), s.scroll, height)
	s.scroll = offset
	return lipgloss.NewStyle().PaddingLeft(2).Render(visible)
}
