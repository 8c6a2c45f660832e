package components

import (
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnlab/internal/ui/theme"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var lastSpinnerID atomic.Int64

// SpinnerTickMsg advances the SpinnerClock it was scheduled by.
type SpinnerTickMsg struct {
	ID  int64
	tag int
}

// SpinnerClock drives one loading animation. Each screen keeps its own, so a
// tick only ever advances the clock and chain that scheduled it.
type SpinnerClock struct {
	id    int64
	tag   int
	Frame int
}

// Start resets the animation and begins a new tick chain. Ticks from any
// earlier chain are ignored from then on.
func (c *SpinnerClock) Start() tea.Cmd {
	c.Frame = 0
	return c.Resume()
}

// Resume begins a new tick chain from the current frame, for a screen that
// missed its ticks while another screen was on top.
func (c *SpinnerClock) Resume() tea.Cmd {
	if c.id == 0 {
		c.id = lastSpinnerID.Add(1)
	}
	c.tag++
	return c.tick()
}

// Update advances the frame for ticks of the current chain while running is
// true and schedules the next one. Other ticks end their chain.
func (c *SpinnerClock) Update(msg SpinnerTickMsg, running bool) tea.Cmd {
	if msg.ID != c.id || msg.tag != c.tag || !running {
		return nil
	}
	c.Frame++
	return c.tick()
}

func (c *SpinnerClock) tick() tea.Cmd {
	id, tag := c.id, c.tag
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg {
		return SpinnerTickMsg{ID: id, tag: tag}
	})
}

// Spinner renders frame n of the loading animation followed by label.
func Spinner(n int, label string) string {
	frame := spinnerFrames[n%len(spinnerFrames)]
	return lipgloss.NewStyle().Foreground(theme.Secondary).Render(frame) + " " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
}
