package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnlab/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar. With Segments set the bar
// is split into that many cells, one per day or question.
type ProgressBar struct {
	Label    string
	Percent  float64 // 0.0-1.0
	Suffix   string  // shown after the bar; defaults to the percentage
	Width    int
	Segments int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Percent: percent,
		Width:   width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result = theme.Body.Render(p.Label) + "  "
	}

	suffix := p.Suffix
	if suffix == "" {
		suffix = fmt.Sprintf("%d%%", int(p.Percent*100))
	}
	suffix = "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix)

	barWidth := p.Width - lipgloss.Width(result) - lipgloss.Width(suffix)
	if barWidth < 4 {
		barWidth = 4
	}

	if p.Segments > 1 && barWidth >= 2*p.Segments-1 {
		return result + p.segmented(barWidth) + suffix
	}

	filled := int(float64(barWidth) * p.Percent)
	filled = max(0, min(filled, barWidth))

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		suffix
	return result
}

// segmented draws Segments cells separated by single spaces. Spare columns
// go to the leading cells.
func (p ProgressBar) segmented(barWidth int) string {
	cells := barWidth - (p.Segments - 1)
	done := int(float64(p.Segments)*p.Percent + 1e-9)
	done = max(0, min(done, p.Segments))

	var b strings.Builder
	for i := 0; i < p.Segments; i++ {
		w := cells / p.Segments
		if i < cells%p.Segments {
			w++
		}
		if i > 0 {
			b.WriteString(" ")
		}
		style := theme.ProgressEmpty
		if i < done {
			style = theme.ProgressFilled
		}
		b.WriteString(style.Render(strings.Repeat(" ", w)))
	}
	return b.String()
}
