package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/learnlab/internal/gateway"
	"github.com/abhisek/learnlab/internal/router"
	"github.com/abhisek/learnlab/internal/screen"
	"github.com/abhisek/learnlab/internal/screens/createplan"
	"github.com/abhisek/learnlab/internal/screens/deps"
	"github.com/abhisek/learnlab/internal/screens/home"
	"github.com/abhisek/learnlab/internal/screens/viewplan"
	"github.com/abhisek/learnlab/internal/screens/welcome"
	"github.com/abhisek/learnlab/internal/session"
	"github.com/abhisek/learnlab/internal/store"
	"github.com/abhisek/learnlab/internal/ui/layout"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Gateway      gateway.Gateway
	Calls        store.EventRepo // optional
	Logger       *zap.Logger     // optional
	NumQuestions int
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   *deps.Deps
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the welcome screen.
func newAppModel(ctx context.Context, opts Options) AppModel {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	d := &deps.Deps{
		State:        session.New(log),
		Gateway:      opts.Gateway,
		Log:          log,
		NumQuestions: opts.NumQuestions,
		Calls:        opts.Calls,
		Ctx:          ctx,
	}
	d.NewCreatePlan = func() screen.Screen { return createplan.New(d) }
	d.NewViewPlan = func() screen.Screen { return viewplan.New(d) }

	homeFactory := func() screen.Screen { return home.New(d) }
	return AppModel{
		router: router.New(welcome.New(homeFactory)),
		deps:   d,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case session.Result:
		// Results are applied here, on the update loop. Superseded ones
		// never reach a screen.
		if !msg.Apply(m.deps.State) {
			return m, nil
		}

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if c, ok := m.router.Active().(screen.Capturer); ok && c.CapturesInput() {
			break
		}
		if msg.String() == "esc" {
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// status summarizes the loaded plan for the header.
func (m AppModel) status() string {
	state := m.deps.State
	if !state.HasPlan() {
		return ""
	}
	day, total := state.Position()
	return fmt.Sprintf("%s · Day %d/%d  ", state.Plan.Subject, day, total)
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the header, the active screen and the footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.RenderHeader(strings.Join(m.router.Trail(), " › "), m.status(), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Any key", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program. Gateway calls made by the UI run
// under ctx.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
