package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnlab/internal/router"
	"github.com/abhisek/learnlab/internal/screen"
	"github.com/abhisek/learnlab/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	pagesEnd     = 1200 * time.Millisecond // book pages are written
	stepInterval = 200 * time.Millisecond  // one study step lights up per interval
	totalDur     = pagesEnd + stepInterval*time.Duration(len(studySteps))
)

// openBook is an open notebook. Rows between the covers are written one at a
// time while the splash plays.
var openBook = []string{
	` ____________   ____________ `,
	`|  ~~~~~~~~  \ /  ~~~~~~~   |`,
	`|  ~~~~~~     |   ~~~~~~~~  |`,
	`|  ~~~~~~~~~  |   ~~~~~     |`,
	`|  ~~~~~      |   ~~~~~~~~  |`,
	`|____________ | ____________|`,
	`             \|/             `,
}

const writtenRows = 4

var studySteps = [...]string{"Plan", "Learn", "Ask", "Quiz"}

type tickMsg time.Time

// WelcomeScreen plays a short splash, then waits for a key before handing
// over to the home screen. A key during the splash skips it.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned || w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

// rowsWritten reports how many notebook rows have been written so far.
func (w *WelcomeScreen) rowsWritten() int {
	return min(int(w.elapsed*writtenRows/pagesEnd), writtenRows)
}

// stepsLit reports how many study steps are highlighted.
func (w *WelcomeScreen) stepsLit() int {
	if w.elapsed < pagesEnd {
		return 0
	}
	return min(int((w.elapsed-pagesEnd)/stepInterval)+1, len(studySteps))
}

func (w *WelcomeScreen) bookView() string {
	written := w.rowsWritten()
	lines := make([]string, len(openBook))
	for i, line := range openBook {
		// Rows 1..writtenRows hold text; unwritten ones are blank pages.
		if i >= 1 && i <= writtenRows && i > written {
			line = strings.ReplaceAll(line, "~", " ")
		}
		lines[i] = line
	}
	return lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Join(lines, "\n"))
}

func (w *WelcomeScreen) stepsView() string {
	lit := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.Border)
	arrow := dim.Render(" → ")

	n := w.stepsLit()
	parts := make([]string, len(studySteps))
	for i, step := range studySteps {
		if i < n {
			parts[i] = lit.Render(step)
		} else {
			parts[i] = dim.Render(step)
		}
	}
	return strings.Join(parts, arrow)
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{w.bookView(), "", w.stepsView()}

	if w.elapsed >= pagesEnd {
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Your AI study companion, one day at a time.")
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, "", RenderBanner(width), "", tagline, "", hint)
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
