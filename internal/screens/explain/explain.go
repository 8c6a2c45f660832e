package explain

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

// ExplainScreen lets the learner pick or type a topic and shows its
// explanation for the current module.
type ExplainScreen struct {
	deps     *deps.Deps
	moduleID int
	module   string
	topics   []string
	cursor   int // len(topics) selects the custom input
	input    components.TextInput
	md       markdown.Renderer
	scroll   int
	height   int
	spin     components.SpinnerClock
}

var _ screen.Screen = (*ExplainScreen)(nil)
var _ screen.KeyHintProvider = (*ExplainScreen)(nil)
var _ screen.Leaver = (*ExplainScreen)(nil)

// New creates an ExplainScreen for the current day's module.
func New(d *deps.Deps) *ExplainScreen {
	mod, _ := d.State.CurrentModule()
	return &ExplainScreen{
		deps:     d,
		moduleID: mod.ID,
		module:   mod.Task(),
		topics:   session.QuickTopics(mod),
		input:    components.NewTextInput("", "type any topic from today's module", false, 120),
	}
}

func (e *ExplainScreen) Init() tea.Cmd {
	if len(e.topics) == 0 {
		return e.input.Focus()
	}
	return nil
}

func (e *ExplainScreen) Title() string {
	return "Explain a Topic"
}

func (e *ExplainScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Explain"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

// Leave drops the explanation so a late response is discarded.
func (e *ExplainScreen) Leave() {
	e.deps.State.Explanation.Reset()
}

func (e *ExplainScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case session.ExplanationResult:
		e.scroll = 0
		return e, nil

	case components.SpinnerTickMsg:
		return e, e.spin.Update(msg, e.deps.State.Explanation.Loading())

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up":
			return e, e.moveCursor(-1)
		case "down":
			return e, e.moveCursor(1)
		case "pgup":
			e.scroll -= max(e.height/2, 1)
			return e, nil
		case "pgdown":
			e.scroll += max(e.height/2, 1)
			return e, nil
		case "enter":
			return e, e.explain()
		}
	}

	if e.input.Focused() {
		var cmd tea.Cmd
		e.input, cmd = e.input.Update(msg)
		return e, cmd
	}
	return e, nil
}

func (e *ExplainScreen) moveCursor(delta int) tea.Cmd {
	e.cursor = max(0, min(e.cursor+delta, len(e.topics)))
	if e.cursor == len(e.topics) {
		return e.input.Focus()
	}
	e.input.Blur()
	return nil
}

func (e *ExplainScreen) explain() tea.Cmd {
	topic := e.input.Value()
	if e.cursor < len(e.topics) {
		topic = e.topics[e.cursor]
	}
	fetch, err := session.RequestExplanation(e.deps.State, e.deps.Gateway, e.moduleID, topic)
	if err != nil {
		e.input.SetError("enter a topic to explain")
		return nil
	}
	return tea.Batch(e.deps.Cmd(fetch), e.spin.Start())
}

func (e *ExplainScreen) View(width, height int) string {
	e.height = height
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Pick a topic from %s or ask about anything else.", e.module)))
	sections = append(sections, components.Panel("Topics", e.topicList(), cw))

	if r := e.resultView(cw); r != "" {
		sections = append(sections, r)
	}

	visible, offset := layout.Window(strings.Join(sections, "\n\n"), e.scroll, height)
	e.scroll = offset
	return lipgloss.NewStyle().PaddingLeft(2).Render(visible)
}

func (e *ExplainScreen) topicList() string {
	var b strings.Builder
	for i, t := range e.topics {
		if i == e.cursor {
			b.WriteString(theme.Selected.Render("▸ " + t))
		} else {
			b.WriteString(theme.Unselected.Render("  " + t))
		}
		b.WriteString("\n")
	}
	label := theme.Unselected.Render("  Custom topic")
	if e.cursor == len(e.topics) {
		label = theme.Selected.Render("▸ Custom topic")
	}
	b.WriteString(label + "\n" + e.input.View())
	return b.String()
}

func (e *ExplainScreen) resultView(cw int) string {
	slot := &e.deps.State.Explanation
	switch slot.Status() {
	case session.StatusLoading:
		return components.Spinner(e.spin.Frame, "Explaining "+slot.Key()+"…")
	case session.StatusFailed:
		return components.ErrorPanel(gateway.UserMessage(slot.Err()), cw) + "\n" +
			theme.Hint.Render("Press enter to try again.")
	case session.StatusReady:
		exp := slot.Data()
		if exp == nil {
			return ""
		}
		topic := exp.Topic
		if topic == "" {
			topic = slot.Key()
		}
		return theme.Heading.Render(topic) + "\n" + e.md.Render(exp.ExplanationMD, cw)
	}
	return ""
}
