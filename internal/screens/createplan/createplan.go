package createplan

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/learnlab/internal/gateway"
	"github.com/abhisek/learnlab/internal/router"
	"github.com/abhisek/learnlab/internal/screen"
	"github.com/abhisek/learnlab/internal/screens/deps"
	"github.com/abhisek/learnlab/internal/ui/components"
	"github.com/abhisek/learnlab/internal/ui/layout"
	"github.com/abhisek/learnlab/internal/ui/theme"
)

// Form fields in focus order.
const (
	fieldName = iota
	fieldSubject
	fieldLevel
	fieldDays
	fieldCount
)

const defaultDays = 7

type planCreatedMsg struct {
	result *gateway.PlanResult
	err    error
}

// CreatePlanScreen collects the learner's details and requests a new plan.
type CreatePlanScreen struct {
	deps    *deps.Deps
	name    components.TextInput
	subject components.TextInput
	days    components.TextInput
	level   int
	focus   int
	loading bool
	spin    components.SpinnerClock
	alert   components.Alert
}

var _ screen.Screen = (*CreatePlanScreen)(nil)
var _ screen.KeyHintProvider = (*CreatePlanScreen)(nil)
var _ screen.Capturer = (*CreatePlanScreen)(nil)

// New creates a new CreatePlanScreen.
func New(d *deps.Deps) *CreatePlanScreen {
	c := &CreatePlanScreen{
		deps:    d,
		name:    components.NewTextInput("Your name", "what should we call you?", false, 40),
		subject: components.NewTextInput("Subject", "e.g. Python, Linear Algebra, Spanish", false, 80),
		days:    components.NewTextInput("Days", strconv.Itoa(defaultDays), true, 2),
	}
	c.days.SetValue(strconv.Itoa(defaultDays))
	return c
}

func (c *CreatePlanScreen) Init() tea.Cmd {
	return c.setFocus(fieldName)
}

func (c *CreatePlanScreen) Title() string {
	return "New Study Plan"
}

func (c *CreatePlanScreen) KeyHints() []layout.KeyHint {
	if c.loading {
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Create plan"},
		{Key: "Esc", Description: "Back"},
	}
	if c.focus == fieldLevel {
		hints = append([]layout.KeyHint{{Key: "←→", Description: "Level"}}, hints...)
	}
	return hints
}

// CapturesInput reports whether an alert is waiting to be dismissed.
func (c *CreatePlanScreen) CapturesInput() bool {
	return c.alert.Visible()
}

func (c *CreatePlanScreen) inputs() map[int]*components.TextInput {
	return map[int]*components.TextInput{
		fieldName:    &c.name,
		fieldSubject: &c.subject,
		fieldDays:    &c.days,
	}
}

func (c *CreatePlanScreen) setFocus(field int) tea.Cmd {
	c.focus = (field + fieldCount) % fieldCount
	var cmd tea.Cmd
	for i, in := range c.inputs() {
		if i == c.focus {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

func (c *CreatePlanScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var handled bool
	if c.alert, handled = c.alert.Update(msg); handled {
		return c, nil
	}

	switch msg := msg.(type) {
	case planCreatedMsg:
		return c, c.handleCreated(msg)

	case components.SpinnerTickMsg:
		return c, c.spin.Update(msg, c.loading)

	case tea.KeyPressMsg:
		if c.loading {
			return c, nil
		}
		switch msg.String() {
		case "tab", "down":
			return c, c.setFocus(c.focus + 1)
		case "shift+tab", "up":
			return c, c.setFocus(c.focus - 1)
		case "enter":
			if c.focus < fieldDays {
				return c, c.setFocus(c.focus + 1)
			}
			return c, c.submit()
		}
		if c.focus == fieldLevel {
			switch msg.String() {
			case "left", "h":
				c.level = (c.level + len(gateway.Levels) - 1) % len(gateway.Levels)
			case "right", "l", "space":
				c.level = (c.level + 1) % len(gateway.Levels)
			}
			return c, nil
		}
	}

	if in, ok := c.inputs()[c.focus]; ok {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return c, cmd
	}
	return c, nil
}

// request validates the form. Field errors are shown inline.
func (c *CreatePlanScreen) request() (gateway.PlanRequest, bool) {
	req := gateway.PlanRequest{
		LearnerName: c.name.Value(),
		Subject:     c.subject.Value(),
		Level:       gateway.Levels[c.level],
	}
	ok := true
	if req.LearnerName == "" {
		c.name.SetError("name is required")
		ok = false
	}
	if req.Subject == "" {
		c.subject.SetError("subject is required")
		ok = false
	}
	days, err := c.days.NumericValue()
	if err != nil || days < gateway.MinTotalDays || days > gateway.MaxTotalDays {
		c.days.SetError(fmt.Sprintf("enter a number from %d to %d", gateway.MinTotalDays, gateway.MaxTotalDays))
		ok = false
	}
	req.TotalDays = days
	return req, ok
}

func (c *CreatePlanScreen) submit() tea.Cmd {
	req, ok := c.request()
	if !ok {
		switch {
		case c.name.Error() != "":
			return c.setFocus(fieldName)
		case c.subject.Error() != "":
			return c.setFocus(fieldSubject)
		}
		return c.setFocus(fieldDays)
	}

	c.loading = true
	c.deps.Logger().Info("creating plan",
		zap.String("subject", req.Subject),
		zap.String("level", req.Level),
		zap.Int("days", req.TotalDays),
	)
	gw, ctx := c.deps.Gateway, c.deps.Context()
	return tea.Batch(func() tea.Msg {
		res, err := gw.CreatePlan(ctx, req)
		return planCreatedMsg{result: res, err: err}
	}, c.spin.Start())
}

func (c *CreatePlanScreen) handleCreated(msg planCreatedMsg) tea.Cmd {
	c.loading = false
	err := msg.err
	if err == nil {
		err = c.deps.State.LoadPlan(msg.result.Plan)
	}
	if err != nil {
		var v *gateway.ValidationError
		if errors.As(err, &v) {
			switch v.Field {
			case "learner_name":
				c.name.SetError(v.Reason)
				return c.setFocus(fieldName)
			case "subject":
				c.subject.SetError(v.Reason)
				return c.setFocus(fieldSubject)
			case "total_days":
				c.days.SetError(v.Reason)
				return c.setFocus(fieldDays)
			}
		}
		c.deps.Logger().Warn("plan creation failed", zap.Error(err))
		c.alert.Show("Could not create plan", gateway.UserMessage(err))
		return nil
	}

	next := c.deps.NewViewPlan()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (c *CreatePlanScreen) View(width, height int) string {
	if c.alert.Visible() {
		return c.alert.View(width, height)
	}

	cw := min(components.ContentWidth(width), 64)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Tell us what you want to learn and we'll build a day-by-day plan."))
	b.WriteString("\n\n")

	b.WriteString(c.name.View())
	b.WriteString("\n\n")
	b.WriteString(c.subject.View())
	b.WriteString("\n\n")
	b.WriteString(c.levelView())
	b.WriteString("\n\n")
	b.WriteString(c.days.View())
	b.WriteString("\n\n")

	if c.loading {
		b.WriteString(components.Spinner(c.spin.Frame, "Generating your study plan…"))
	} else {
		b.WriteString(components.NewButton("Create plan", c.subject.Value() != "" && c.name.Value() != "").WithKey("enter").View())
	}

	panel := components.Panel("New study plan", b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}

func (c *CreatePlanScreen) levelView() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	if c.focus == fieldLevel {
		label = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	parts := make([]string, len(gateway.Levels))
	for i, lvl := range gateway.Levels {
		if i == c.level {
			parts[i] = theme.Selected.Render("[" + lvl + "]")
		} else {
			parts[i] = theme.Unselected.Render(" " + lvl + " ")
		}
	}
	return label.Render("Level") + "\n" + "› " + strings.Join(parts, " ")
}
