package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/learnlab/internal/gateway"
	"github.com/abhisek/learnlab/internal/router"
	"github.com/abhisek/learnlab/internal/screens/doubt"
	"github.com/abhisek/learnlab/internal/screens/home"
	"github.com/abhisek/learnlab/internal/screens/viewplan"
	"github.com/abhisek/learnlab/internal/session"
)

func testPlan() *gateway.StudyPlan {
	return &gateway.StudyPlan{Subject: "Go", Modules: []gateway.Module{
		{ID: 1, Title: "Day 1: Syntax"},
		{ID: 2, Title: "Day 2: Types"},
	}}
}

// step sends msg and feeds back any navigation message the command yields.
func step(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(AppModel)
	if cmd == nil {
		return m
	}
	switch out := cmd().(type) {
	case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg:
		next, _ = m.Update(out)
		m = next.(AppModel)
	}
	return m
}

// results runs cmd, flattening batches, and returns the session results.
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

func newTestModel(gw gateway.Gateway) AppModel {
	return newAppModel(context.Background(), Options{Gateway: gw, NumQuestions: 3})
}

func TestWelcomeToHome(t *testing.T) {
	m := newTestModel(gateway.NewMockGateway())
	if m.Init() == nil {
		t.Error("welcome should start its animation")
	}
	m = step(t, m, tea.KeyPressMsg{Code: ' ', Text: " "})
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Fatalf("active = %T, want home", m.router.Active())
	}
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1 (welcome replaced)", m.router.Depth())
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(gateway.NewMockGateway())
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestEscPopsAndLeaves(t *testing.T) {
	m := newTestModel(gateway.NewMockGateway())
	m = step(t, m, tea.KeyPressMsg{Code: ' ', Text: " "})
	if err := m.deps.State.LoadPlan(testPlan()); err != nil {
		t.Fatal(err)
	}
	m = step(t, m, router.PushScreenMsg{Screen: viewplan.New(m.deps)})
	m.deps.State.Brief.Begin("Day 1: Syntax")

	m = step(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", m.router.Depth())
	}
	if m.deps.State.Brief.Status() != session.StatusIdle {
		t.Error("leaving the plan screen should reset the brief")
	}

	// At the bottom of the stack esc does nothing.
	m = step(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d after esc at root", m.router.Depth())
	}
}

func TestResultsAppliedBeforeRouting(t *testing.T) {
	gw := gateway.NewMockGateway().
		Push(gateway.OpGetTopicBrief, gateway.MockResult{Value: gateway.Brief("old")}).
		Push(gateway.OpGetTopicBrief, gateway.MockResult{Value: gateway.Brief("new")})
	m := newTestModel(gw)
	if err := m.deps.State.LoadPlan(testPlan()); err != nil {
		t.Fatal(err)
	}
	state := m.deps.State

	older, _ := session.RequestBrief(state, gw, "A")
	newer, _ := session.RequestBrief(state, gw, "B")
	oldRes := older(context.Background())
	newRes := newer(context.Background())

	m = step(t, m, newRes)
	if state.Brief.Data() != "new" {
		t.Fatalf("brief = %q, want new", state.Brief.Data())
	}
	_, cmd := m.Update(oldRes)
	if cmd != nil {
		t.Error("stale result should not be routed")
	}
	if state.Brief.Data() != "new" {
		t.Errorf("stale result overwrote brief: %q", state.Brief.Data())
	}
}

func TestHeaderShowsPlanPosition(t *testing.T) {
	m := newTestModel(gateway.NewMockGateway())
	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = step(t, m, tea.KeyPressMsg{Code: ' ', Text: " "})
	if err := m.deps.State.LoadPlan(testPlan()); err != nil {
		t.Fatal(err)
	}
	m.deps.State.SelectDay(2)

	view := ansi.Strip(m.render())
	if !strings.Contains(view, "Go · Day 2/2") {
		t.Errorf("header missing plan position:\n%s", view)
	}
}

func TestTooSmall(t *testing.T) {
	m := newTestModel(gateway.NewMockGateway())
	m = step(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(ansi.Strip(m.render()), "Terminal too small") {
		t.Error("expected min size message")
	}
}

func TestBriefFailureUnderChildScreenStaysVisible(t *testing.T) {
	gw := gateway.NewMockGateway().Push(gateway.OpGetTopicBrief, gateway.MockResult{
		Err: &gateway.TransportError{Op: gateway.OpGetTopicBrief, StatusCode: 503, Detail: "brief service down"},
	})
	m := newTestModel(gw)
	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 60})
	m = step(t, m, tea.KeyPressMsg{Code: ' ', Text: " "})
	if err := m.deps.State.LoadPlan(testPlan()); err != nil {
		t.Fatal(err)
	}
	m = step(t, m, router.PushScreenMsg{Screen: viewplan.New(m.deps)})

	next, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m = next.(AppModel)
	pending := results(cmd)
	if len(pending) != 1 {
		t.Fatalf("got %d results, want 1", len(pending))
	}

	m = step(t, m, tea.KeyPressMsg{Code: 'd', Text: "d"})
	if _, ok := m.router.Active().(*doubt.DoubtScreen); !ok {
		t.Fatalf("active = %T, want doubt", m.router.Active())
	}

	m = step(t, m, pending[0])
	if m.deps.State.Brief.Status() != session.StatusFailed {
		t.Fatalf("brief status = %v, want failed", m.deps.State.Brief.Status())
	}

	m = step(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := m.router.Active().(*viewplan.ViewPlanScreen); !ok {
		t.Fatalf("active = %T, want plan screen", m.router.Active())
	}
	view := ansi.Strip(m.render())
	if !strings.Contains(view, "brief service down") {
		t.Errorf("brief failure lost after returning to the plan:\n%s", view)
	}
	if !strings.Contains(view, "Press enter to try again") {
		t.Error("retry hint missing")
	}
}
