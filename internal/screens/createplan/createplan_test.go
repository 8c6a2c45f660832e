package createplan

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnlab/internal/gateway"
	"github.com/abhisek/learnlab/internal/router"
	"github.com/abhisek/learnlab/internal/screen"
	"github.com/abhisek/learnlab/internal/screens/deps"
	"github.com/abhisek/learnlab/internal/session"
)

type stubScreen struct{ name string }

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return s.name }
func (s *stubScreen) Title() string                          { return s.name }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(c *CreatePlanScreen, s string) {
	for _, r := range s {
		c.Update(keyPress(r))
	}
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func newTestScreen(gw gateway.Gateway) (*CreatePlanScreen, *deps.Deps) {
	d := &deps.Deps{
		State:       session.New(nil),
		Gateway:     gw,
		NewViewPlan: func() screen.Screen { return &stubScreen{name: "view"} },
	}
	c := New(d)
	c.Init()
	return c, d
}

func fillForm(c *CreatePlanScreen) {
	typeText(c, "Ada")
	c.Update(specialKey(tea.KeyTab))
	typeText(c, "Go")
	c.Update(specialKey(tea.KeyTab))
	c.Update(specialKey(tea.KeyRight))
	c.Update(specialKey(tea.KeyTab))
}

func TestSubmitRequiresNameAndSubject(t *testing.T) {
	gw := gateway.NewMockGateway()
	c, _ := newTestScreen(gw)
	c.setFocus(fieldDays)

	c.Update(specialKey(tea.KeyEnter))
	if c.loading {
		t.Fatal("invalid form must not start loading")
	}
	if c.name.Error() == "" || c.subject.Error() == "" {
		t.Errorf("expected inline errors, got name=%q subject=%q", c.name.Error(), c.subject.Error())
	}
	if c.focus != fieldName {
		t.Errorf("focus = %d, want name field", c.focus)
	}
	if len(gw.Calls) != 0 {
		t.Error("no request should be sent")
	}
}

func TestDaysOutOfRange(t *testing.T) {
	c, _ := newTestScreen(gateway.NewMockGateway())
	fillForm(c)
	c.days.SetValue("45")

	c.Update(specialKey(tea.KeyEnter))
	if c.days.Error() == "" {
		t.Error("expected days error")
	}
}

func TestEnterAdvancesFields(t *testing.T) {
	c, _ := newTestScreen(gateway.NewMockGateway())
	c.Update(specialKey(tea.KeyEnter))
	if c.focus != fieldSubject {
		t.Errorf("focus = %d, want subject", c.focus)
	}
	if !c.subject.Focused() || c.name.Focused() {
		t.Error("text focus did not move with the form")
	}
}

func TestLevelCycles(t *testing.T) {
	c, _ := newTestScreen(gateway.NewMockGateway())
	c.setFocus(fieldLevel)
	c.Update(specialKey(tea.KeyLeft))
	if gateway.Levels[c.level] != gateway.LevelAdvanced {
		t.Errorf("level = %s, want advanced", gateway.Levels[c.level])
	}
	c.Update(specialKey(tea.KeyRight))
	if gateway.Levels[c.level] != gateway.LevelBeginner {
		t.Errorf("level = %s, want beginner", gateway.Levels[c.level])
	}
}

func TestCreateSuccessLoadsPlanAndReplaces(t *testing.T) {
	plan := &gateway.StudyPlan{Subject: "Go", Modules: []gateway.Module{
		{ID: 1, Title: "Day 1: Syntax"},
		{ID: 2, Title: "Day 2: Types"},
	}}
	gw := gateway.NewMockGateway().Push(gateway.OpCreatePlan, gateway.MockResult{Value: &gateway.PlanResult{Plan: plan}})
	c, d := newTestScreen(gw)
	fillForm(c)

	_, cmd := c.Update(specialKey(tea.KeyEnter))
	if !c.loading {
		t.Fatal("expected loading after submit")
	}

	var created *planCreatedMsg
	for _, msg := range collect(cmd) {
		if m, ok := msg.(planCreatedMsg); ok {
			created = &m
		}
	}
	if created == nil {
		t.Fatal("no planCreatedMsg produced")
	}

	req := gw.Calls[0].Plan
	if req.LearnerName != "Ada" || req.Subject != "Go" || req.Level != gateway.LevelIntermediate || req.TotalDays != 7 {
		t.Errorf("request = %+v", req)
	}

	_, cmd = c.Update(*created)
	if !d.State.HasPlan() || d.State.CurrentDay != 1 {
		t.Error("plan not loaded into the session")
	}
	replace, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if replace.Screen.Title() != "view" {
		t.Errorf("replaced with %q", replace.Screen.Title())
	}
}

func TestCreateFailureShowsAlert(t *testing.T) {
	c, d := newTestScreen(gateway.NewMockGateway())
	fillForm(c)
	c.Update(specialKey(tea.KeyEnter))

	c.Update(planCreatedMsg{err: &gateway.TransportError{Op: gateway.OpCreatePlan, StatusCode: 500, Detail: "model overloaded"}})
	if c.loading {
		t.Error("loading not cleared")
	}
	if !c.alert.Visible() || !c.CapturesInput() {
		t.Fatal("alert should be showing")
	}
	if c.alert.Message != "model overloaded" {
		t.Errorf("alert message = %q", c.alert.Message)
	}
	if d.State.HasPlan() {
		t.Error("failed creation must not load a plan")
	}

	c.Update(specialKey(tea.KeyEscape))
	if c.alert.Visible() {
		t.Error("esc should dismiss the alert")
	}
	if c.subject.Value() != "Go" {
		t.Error("form values should survive a failure")
	}
}

func TestCreateRejectsEmptyPlan(t *testing.T) {
	c, d := newTestScreen(gateway.NewMockGateway())
	c.Update(planCreatedMsg{result: &gateway.PlanResult{Plan: &gateway.StudyPlan{Subject: "Go"}}})
	if !c.alert.Visible() {
		t.Error("a plan without modules should be reported")
	}
	if d.State.HasPlan() {
		t.Error("empty plan loaded")
	}
}
