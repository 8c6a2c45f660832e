package viewplan

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
	"github.com/abhisek/learnlab/internal/screens/doubt"
	"github.com/abhisek/learnlab/internal/screens/explain"
	"github.com/abhisek/learnlab/internal/screens/quiz"
	"github.com/abhisek/learnlab/internal/session"
	"github.com/abhisek/learnlab/internal/ui/components"
	"github.com/abhisek/learnlab/internal/ui/layout"
	"github.com/abhisek/learnlab/internal/ui/markdown"
	"github.com/abhisek/learnlab/internal/ui/theme"
)

// ViewPlanScreen shows the current day of the loaded plan and its brief.
type ViewPlanScreen struct {
	deps   *deps.Deps
	md     markdown.Renderer
	scroll int
	height int
	spin   components.SpinnerClock
	alert  components.Alert
}

var _ screen.Screen = (*ViewPlanScreen)(nil)
var _ screen.KeyHintProvider = (*ViewPlanScreen)(nil)
var _ screen.Leaver = (*ViewPlanScreen)(nil)
var _ screen.Capturer = (*ViewPlanScreen)(nil)
var _ screen.Resumer = (*ViewPlanScreen)(nil)

// New creates a new ViewPlanScreen.
func New(d *deps.Deps) *ViewPlanScreen {
	return &ViewPlanScreen{deps: d}
}

// Init redirects to plan creation when no plan is loaded.
func (v *ViewPlanScreen) Init() tea.Cmd {
	if v.deps.State.HasPlan() {
		return nil
	}
	next := v.deps.NewCreatePlan()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (v *ViewPlanScreen) Title() string {
	return "Study Plan"
}

func (v *ViewPlanScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Day"},
		{Key: "Enter", Description: "Brief"},
		{Key: "e", Description: "Explain"},
		{Key: "d", Description: "Doubt"},
		{Key: "q", Description: "Quiz"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

// Leave drops the brief so a late response is discarded.
func (v *ViewPlanScreen) Leave() {
	v.deps.State.Brief.Reset()
}

// Resume restarts the spinner when the brief is still loading after a
// child screen is popped.
func (v *ViewPlanScreen) Resume() tea.Cmd {
	if !v.deps.State.Brief.Loading() {
		return nil
	}
	return v.spin.Resume()
}

// CapturesInput reports whether an alert is waiting to be dismissed.
func (v *ViewPlanScreen) CapturesInput() bool {
	return v.alert.Visible()
}

func (v *ViewPlanScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var handled bool
	if v.alert, handled = v.alert.Update(msg); handled {
		return v, nil
	}

	state := v.deps.State
	switch msg := msg.(type) {
	case session.BriefResult:
		if msg.Err != nil {
			v.alert.Show("Could not load brief", gateway.UserMessage(msg.Err))
		}
		v.scroll = 0
		return v, nil

	case components.SpinnerTickMsg:
		return v, v.spin.Update(msg, state.Brief.Loading())

	case tea.KeyPressMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *ViewPlanScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	state := v.deps.State
	if !state.HasPlan() {
		return nil
	}
	mod, _ := state.CurrentModule()
	day, total := state.Position()

	switch key := msg.String(); key {
	case "left", "h":
		if day > 1 {
			v.selectDay(state.Plan.Modules[day-2].ID)
		}
	case "right", "l":
		if day < total {
			v.selectDay(state.Plan.Modules[day].ID)
		}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if i := int(key[0] - '1'); i < total {
			v.selectDay(state.Plan.Modules[i].ID)
		}
	case "up", "k":
		v.scroll--
	case "down", "j":
		v.scroll++
	case "pgup":
		v.scroll -= max(v.height/2, 1)
	case "pgdown":
		v.scroll += max(v.height/2, 1)
	case "enter":
		return v.requestBrief(mod)
	case "e":
		next := explain.New(v.deps)
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	case "d":
		next := doubt.New(v.deps)
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	case "q":
		next := quiz.New(v.deps, mod.ID)
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
	return nil
}

func (v *ViewPlanScreen) selectDay(id int) {
	v.deps.State.SelectDay(id)
	v.scroll = 0
}

func (v *ViewPlanScreen) requestBrief(mod gateway.Module) tea.Cmd {
	fetch, err := session.RequestBrief(v.deps.State, v.deps.Gateway, mod.Title)
	if err != nil {
		v.deps.Logger().Warn("brief not requested", zap.Error(err))
		return nil
	}
	return tea.Batch(v.deps.Cmd(fetch), v.spin.Start())
}

func (v *ViewPlanScreen) View(width, height int) string {
	state := v.deps.State
	if !state.HasPlan() {
		return ""
	}
	if v.alert.Visible() {
		return v.alert.View(width, height)
	}
	v.height = height

	cw := components.ContentWidth(width)
	mod, _ := state.CurrentModule()
	day, total := state.Position()

	var sections []string

	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(mod.Task())
	meta := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("%s · %s · %s", state.Plan.Subject, state.Plan.Level, state.Plan.Theme()))
	sections = append(sections, title+"\n"+meta)

	sections = append(sections, renderTimeline(state.Plan.Modules, state.CurrentDay, cw))

	bar := components.NewProgressBar("", state.Progress(), cw)
	bar.Suffix = fmt.Sprintf("Day %d of %d", day, total)
	bar.Segments = total
	sections = append(sections, bar.View())

	sections = append(sections, components.Panel("Today's focus", renderModule(mod), cw))
	sections = append(sections, v.briefView(cw))

	sep := "\n\n"
	if layout.IsCompactHeight(height) {
		sep = "\n"
	}
	body := strings.Join(sections, sep)
	visible, offset := layout.Window(body, v.scroll, height)
	v.scroll = offset
	return lipgloss.NewStyle().PaddingLeft(2).Render(visible)
}

func (v *ViewPlanScreen) briefView(cw int) string {
	brief := &v.deps.State.Brief
	switch brief.Status() {
	case session.StatusLoading:
		return components.Spinner(v.spin.Frame, "Preparing today's brief…")
	case session.StatusReady:
		return theme.Heading.Render("Brief") + "\n" + v.md.Render(string(brief.Data()), cw)
	case session.StatusFailed:
		return components.ErrorPanel(gateway.UserMessage(brief.Err()), cw) + "\n" +
			theme.Hint.Render("Press enter to try again.")
	}
	return theme.Hint.Render("Press enter to load today's brief.")
}

// renderTimeline draws one marker per day, highlighting the current one.
func renderTimeline(modules []gateway.Module, current int, cw int) string {
	past := true
	marks := make([]string, 0, len(modules))
	for _, m := range modules {
		label := fmt.Sprintf("%d", m.ID)
		switch {
		case m.ID == current:
			marks = append(marks, theme.Current.Render("◉ "+label))
			past = false
		case past:
			marks = append(marks, theme.DayDone.Render("● "+label))
		default:
			marks = append(marks, theme.DayAhead.Render("○ "+label))
		}
	}
	return lipgloss.NewStyle().Width(cw).Render(strings.Join(marks, "  "))
}

func renderModule(m gateway.Module) string {
	var b strings.Builder
	writeList := func(heading string, items []string) {
		if len(items) == 0 {
			return
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(heading))
		for _, item := range items {
			b.WriteString("\n  • " + item)
		}
	}
	writeList("Objectives", m.LearningObjectives)
	writeList("Tasks", m.DailyTasks)
	writeList("Resources", m.Resources)
	if b.Len() == 0 {
		return theme.Hint.Render("No details for this day.")
	}
	return b.String()
}
