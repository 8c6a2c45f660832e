package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnlab/internal/gateway"
	"github.com/abhisek/learnlab/internal/router"
	"github.com/abhisek/learnlab/internal/screen"
	"github.com/abhisek/learnlab/internal/screens/deps"
	"github.com/abhisek/learnlab/internal/screens/history"
	"github.com/abhisek/learnlab/internal/session"
	"github.com/abhisek/learnlab/internal/ui/components"
	"github.com/abhisek/learnlab/internal/ui/layout"
)

const (
	itemCreate = iota
	itemContinue
	itemHistory
	itemCheck
	itemQuit
)

// healthResult settles a backend check. It goes through the app's result
// path, so it reaches home even when another screen is on top.
type healthResult struct {
	home    *HomeScreen
	message string
	err     error
}

func (r healthResult) Apply(*session.SessionState) bool {
	r.home.settle(r.message, r.err)
	return false
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps     *deps.Deps
	menu     components.Menu
	checking bool
	status   string
	statusOK bool
	spin     components.SpinnerClock
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(d *deps.Deps) *HomeScreen {
	h := &HomeScreen{deps: d}
	items := []components.MenuItem{
		{Label: "Create a study plan", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: d.NewCreatePlan()}
			}
		}},
		{Label: "Continue studying", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: d.NewViewPlan()}
			}
		}},
		{Label: "Call history", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(d)}
			}
		}},
		{Label: "Check backend", Action: h.checkBackend},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	h.syncMenu()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// syncMenu enables "Continue studying" only while a plan is loaded and
// "Call history" only while the call log is open.
func (h *HomeScreen) syncMenu() {
	h.menu.Items[itemContinue].Disabled = !h.deps.State.HasPlan()
	h.menu.Items[itemHistory].Disabled = h.deps.Calls == nil
	if h.menu.Items[h.menu.Selected].Disabled {
		h.menu.Selected = itemCreate
	}
}

func (h *HomeScreen) checkBackend() tea.Cmd {
	if h.checking {
		return nil
	}
	h.checking = true
	gw, ctx := h.deps.Gateway, h.deps.Context()
	return tea.Batch(func() tea.Msg {
		msg, err := gw.Health(ctx)
		return healthResult{home: h, message: msg, err: err}
	}, h.spin.Start())
}

func (h *HomeScreen) settle(message string, err error) {
	h.checking = false
	if err != nil {
		h.status, h.statusOK = gateway.UserMessage(err), false
	} else {
		h.status, h.statusOK = "Backend online: "+message, true
	}
}

// Resume restarts the spinner of a health check that is still running.
func (h *HomeScreen) Resume() tea.Cmd {
	if !h.checking {
		return nil
	}
	return h.spin.Resume()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	h.syncMenu()

	switch msg := msg.(type) {
	case components.SpinnerTickMsg:
		return h, h.spin.Update(msg, h.checking)
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	h.syncMenu()
	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw))

	day, total := h.deps.State.Position()
	sections = append(sections, renderPlanCard(h.deps.State.Plan, day, total, cw))

	labels := make([]string, len(h.menu.Items))
	disabled := make(map[int]bool)
	for i, item := range h.menu.Items {
		labels[i] = item.Label
		disabled[i] = item.Disabled
	}
	sections = append(sections, renderMenu(labels, h.menu.Selected, disabled, cw))

	switch {
	case h.checking:
		sections = append(sections, components.Spinner(h.spin.Frame, "Checking backend…"))
	case h.status != "":
		sections = append(sections, renderStatus(h.status, h.statusOK, cw))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}
