package quiz

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/learnlab/internal/gateway"
	"github.com/abhisek/learnlab/internal/router"
	"github.com/abhisek/learnlab/internal/screen"
	"github.com/abhisek/learnlab/internal/screens/deps"
	"github.com/abhisek/learnlab/internal/screens/summary"
	"github.com/abhisek/learnlab/internal/session"
	"github.com/abhisek/learnlab/internal/ui/components"
	"github.com/abhisek/learnlab/internal/ui/layout"
	"github.com/abhisek/learnlab/internal/ui/theme"
)

// QuizScreen runs a generated multiple-choice quiz for one module.
type QuizScreen struct {
	deps     *deps.Deps
	moduleID int
	cursor   int
	spin     components.SpinnerClock
	alert    components.Alert
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Leaver = (*QuizScreen)(nil)
var _ screen.Capturer = (*QuizScreen)(nil)

// New creates a QuizScreen for moduleID.
func New(d *deps.Deps, moduleID int) *QuizScreen {
	return &QuizScreen{deps: d, moduleID: moduleID}
}

// Init requests a fresh set of questions.
func (s *QuizScreen) Init() tea.Cmd {
	return s.start()
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.run().Phase {
	case session.QuizInProgress:
		next := "Next"
		if s.run().IsLast() {
			next = "Finish"
		}
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Choose"},
			{Key: "n", Description: next},
			{Key: "Esc", Description: "Quit quiz"},
		}
	case session.QuizNotStarted:
		return []layout.KeyHint{
			{Key: "r", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

// Leave abandons the run so a late quiz is discarded.
func (s *QuizScreen) Leave() {
	s.deps.State.Quiz.Reset()
}

// CapturesInput reports whether an alert is waiting to be dismissed.
func (s *QuizScreen) CapturesInput() bool {
	return s.alert.Visible()
}

func (s *QuizScreen) run() *session.QuizRun {
	return &s.deps.State.Quiz
}

func (s *QuizScreen) start() tea.Cmd {
	fetch, err := session.StartQuiz(s.deps.State, s.deps.Gateway, s.moduleID, s.deps.NumQuestions)
	if err != nil {
		s.alert.Show("Could not start quiz", gateway.UserMessage(err))
		return nil
	}
	s.cursor = 0
	return tea.Batch(s.deps.Cmd(fetch), s.spin.Start())
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var handled bool
	if s.alert, handled = s.alert.Update(msg); handled {
		return s, nil
	}

	switch msg := msg.(type) {
	case session.QuizResult:
		if msg.Err != nil {
			s.alert.Show("Could not generate quiz", gateway.UserMessage(msg.Err))
		}
		s.cursor = 0
		return s, nil

	case components.SpinnerTickMsg:
		return s, s.spin.Update(msg, s.run().Phase == session.QuizLoading)

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	run := s.run()
	switch run.Phase {
	case session.QuizNotStarted:
		if msg.String() == "r" {
			return s.start()
		}
		return nil
	case session.QuizInProgress:
	default:
		return nil
	}

	q, _ := run.CurrentQuestion()
	switch key := msg.String(); key {
	case "up", "k":
		s.cursor = max(s.cursor-1, 0)
	case "down", "j":
		s.cursor = min(s.cursor+1, len(q.Options)-1)
	case "enter", "space":
		if s.cursor < len(q.Options) {
			s.choose(q.Options[s.cursor])
		}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if i := int(key[0] - '1'); i < len(q.Options) {
			s.cursor = i
			s.choose(q.Options[i])
		}
	case "n", "right", "tab":
		return s.advance()
	}
	return nil
}

func (s *QuizScreen) choose(option string) {
	if err := s.run().SelectOption(s.run().CurrentStep, option); err != nil {
		s.deps.Logger().Debug("option rejected", zap.Error(err))
	}
}

func (s *QuizScreen) advance() tea.Cmd {
	run := s.run()
	if err := run.Advance(); err != nil {
		return nil
	}
	s.cursor = 0
	if run.Phase != session.QuizCompleted {
		return nil
	}

	sum := run.Summary()
	if mod, ok := s.deps.State.Module(s.moduleID); ok && sum.ModuleTitle == "" {
		sum.ModuleTitle = mod.Title
	}
	s.deps.Logger().Info("quiz completed",
		zap.Int("module_id", s.moduleID),
		zap.Int("score", sum.Correct),
		zap.Int("total", sum.Total),
	)

	d, id := s.deps, s.moduleID
	next := summary.New(sum, func() screen.Screen { return New(d, id) })
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *QuizScreen) View(width, height int) string {
	if s.alert.Visible() {
		return s.alert.View(width, height)
	}

	run := s.run()
	var content string
	switch run.Phase {
	case session.QuizLoading:
		content = components.Spinner(s.spin.Frame, "Generating questions…")
	case session.QuizInProgress:
		content = s.questionView(components.ContentWidth(width))
	case session.QuizNotStarted:
		msg := "The quiz could not be generated."
		if run.Err != nil {
			msg = gateway.UserMessage(run.Err)
		}
		content = components.ErrorPanel(msg, min(components.ContentWidth(width), 60)) + "\n\n" +
			theme.Hint.Render("Press r to try again.")
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *QuizScreen) questionView(cw int) string {
	run := s.run()
	q, ok := run.CurrentQuestion()
	if !ok {
		return ""
	}
	chosen := run.Answers[run.CurrentStep]
	total := len(run.Questions())

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(
		fmt.Sprintf("Question %d of %d", run.CurrentStep+1, total)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw-4)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw - 4).Render(q.Question))
	b.WriteString("\n\n")

	for i, opt := range q.Options {
		mark := "○"
		if opt == chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s %d. %s", mark, i+1, opt)
		switch {
		case i == s.cursor:
			b.WriteString(theme.Selected.Render("▸ " + line))
		case opt == chosen:
			b.WriteString(theme.Current.Render("  " + line))
		default:
			b.WriteString(theme.Unselected.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	label := "Next"
	if run.IsLast() {
		label = "Finish"
	}
	b.WriteString(components.NewButton(label, run.Answered()).WithKey("n").View())

	bar := components.NewProgressBar("", float64(run.CurrentStep)/float64(total), cw-4)
	bar.Suffix = fmt.Sprintf("%d answered", len(run.Answers))
	bar.Segments = total
	b.WriteString("\n\n" + bar.View())

	return components.Panel("", b.String(), cw)
}
