package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnlab/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name shown in the header trail. Empty titles
	// are left out of the trail.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Leaver is an optional interface for screens that own session state. Leave
// is called when the screen is popped or replaced, so late results for it
// are dropped.
type Leaver interface {
	Leave()
}

// Resumer is an optional interface for screens that need to restart work,
// such as a spinner, when a pop makes them active again.
type Resumer interface {
	Resume() tea.Cmd
}

// Capturer is an optional interface for screens that sometimes need every
// key, such as while an alert is showing. While CapturesInput reports true
// the app forwards all keys except ctrl+c to the screen, esc included.
type Capturer interface {
	CapturesInput() bool
}
