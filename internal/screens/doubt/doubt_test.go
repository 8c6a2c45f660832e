package doubt

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/learnlab/internal/gateway"
	"github.com/abhisek/learnlab/internal/screens/deps"
	"github.com/abhisek/learnlab/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func results(cmd tea.Cmd) []session.Result {
	if cmd == nil {
		return nil
	}
	var out []session.Result
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, results(c)...)
		}
	case session.Result:
		out = append(out, msg)
	}
	return out
}

func newTestScreen(t *testing.T, gw gateway.Gateway) (*DoubtScreen, *deps.Deps) {
	t.Helper()
	d := &deps.Deps{State: session.New(nil), Gateway: gw}
	plan := &gateway.StudyPlan{Subject: "Go", Modules: []gateway.Module{{ID: 2, Title: "Day 2: Types"}}}
	if err := d.State.LoadPlan(plan); err != nil {
		t.Fatal(err)
	}
	s := New(d)
	s.Init()
	return s, d
}

func ask(s *DoubtScreen, d *deps.Deps, question string) {
	for _, r := range question {
		s.Update(keyPress(r))
	}
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	for _, r := range results(cmd) {
		if r.Apply(d.State) {
			s.Update(r)
		}
	}
}

func TestAskShowsAnswer(t *testing.T) {
	gw := gateway.NewMockGateway().Push(gateway.OpAskDoubt, gateway.MockResult{
		Value: &gateway.Answer{Answer: "Interfaces are satisfied implicitly."},
	})
	s, d := newTestScreen(t, gw)
	ask(s, d, "why no implements")

	call := gw.Calls[0]
	if call.ModuleID != 2 || call.Text != "why no implements" {
		t.Errorf("call = %+v", call)
	}
	view := ansi.Strip(s.View(100, 40))
	if !strings.Contains(view, "satisfied implicitly") || !strings.Contains(view, "why no implements") {
		t.Errorf("answer panel missing:\n%s", view)
	}
	if s.input.Value() != "" {
		t.Error("input should clear after an answer")
	}
}

func TestEmptyQuestion(t *testing.T) {
	gw := gateway.NewMockGateway()
	s, d := newTestScreen(t, gw)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil || len(gw.Calls) != 0 {
		t.Error("empty question must not be sent")
	}
	if s.input.Error() == "" {
		t.Error("expected inline error")
	}
	if d.State.Doubt.Status() != session.StatusIdle {
		t.Error("slot touched by invalid input")
	}
}

func TestFailureShowsAlert(t *testing.T) {
	gw := gateway.NewMockGateway().Push(gateway.OpAskDoubt, gateway.MockResult{
		Err: &gateway.TransportError{Op: gateway.OpAskDoubt, StatusCode: 502},
	})
	s, d := newTestScreen(t, gw)
	ask(s, d, "what is a rune")

	if !s.CapturesInput() {
		t.Fatal("alert should be showing")
	}
	view := ansi.Strip(s.View(100, 40))
	if !strings.Contains(view, "Could not answer") {
		t.Errorf("alert missing:\n%s", view)
	}

	// Keys go to the alert, not the input.
	s.Update(keyPress('x'))
	s.Update(specialKey(tea.KeyEnter))
	if s.CapturesInput() {
		t.Error("enter should dismiss")
	}
	if s.input.Value() != "what is a rune" {
		t.Errorf("input = %q, question should be kept for a retry", s.input.Value())
	}
}

func TestLeaveResetsDoubt(t *testing.T) {
	gw := gateway.NewMockGateway().Push(gateway.OpAskDoubt, gateway.MockResult{Value: &gateway.Answer{Answer: "late"}})
	s, d := newTestScreen(t, gw)
	for _, r := range "q?" {
		s.Update(keyPress(r))
	}
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	s.Leave()
	for _, r := range results(cmd) {
		if r.Apply(d.State) {
			t.Error("late answer applied after leave")
		}
	}
}
