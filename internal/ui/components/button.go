package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnlab/internal/ui/theme"
)

// Button renders a labelled action that may be unavailable. Key, when set,
// is shown after the label as the shortcut that triggers it.
type Button struct {
	Label   string
	Key     string
	Enabled bool
}

// NewButton creates a new button.
func NewButton(label string, enabled bool) Button {
	return Button{Label: label, Enabled: enabled}
}

// WithKey returns a copy of b showing key as its shortcut.
func (b Button) WithKey(key string) Button {
	b.Key = key
	return b
}

// View renders the button.
func (b Button) View() string {
	label := " " + b.Label + " "
	if !b.Enabled {
		return theme.ButtonInactive.Foreground(theme.TextDim).Render(label)
	}
	out := theme.ButtonActive.Render("▸" + label)
	if b.Key != "" {
		out += " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render("("+b.Key+")")
	}
	return out
}
