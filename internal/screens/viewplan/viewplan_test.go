package viewplan

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/learnlab/internal/gateway"
	"github.com/abhisek/learnlab/internal/router"
	"github.com/abhisek/learnlab/internal/screen"
	"github.com/abhisek/learnlab/internal/screens/deps"
	"github.com/abhisek/learnlab/internal/screens/doubt"
	"github.com/abhisek/learnlab/internal/screens/explain"
	"github.com/abhisek/learnlab/internal/screens/quiz"
	"github.com/abhisek/learnlab/internal/session"
	"github.com/abhisek/learnlab/internal/ui/components"
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

// messages runs cmd, flattening batches, and returns what it produced.
func messages(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, messages(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// results runs cmd and returns the session results it produced.
func results(cmd tea.Cmd) []session.Result {
	var out []session.Result
	for _, msg := range messages(cmd) {
		if r, ok := msg.(session.Result); ok {
			out = append(out, r)
		}
	}
	return out
}

func spinnerTicks(msgs []tea.Msg) []components.SpinnerTickMsg {
	var out []components.SpinnerTickMsg
	for _, msg := range msgs {
		if tick, ok := msg.(components.SpinnerTickMsg); ok {
			out = append(out, tick)
		}
	}
	return out
}

func newTestDeps(t *testing.T, gw gateway.Gateway) *deps.Deps {
	t.Helper()
	d := &deps.Deps{
		State:         session.New(nil),
		Gateway:       gw,
		NewCreatePlan: func() screen.Screen { return &stubScreen{name: "create"} },
	}
	plan := &gateway.StudyPlan{Subject: "Go", Level: "beginner", Modules: []gateway.Module{
		{ID: 1, Title: "Day 1: Syntax", LearningObjectives: []string{"Learn Go syntax"}, DailyTasks: []string{"Write hello world"}},
		{ID: 2, Title: "Day 2: Types", LearningObjectives: []string{"Types: structs and interfaces"}},
		{ID: 3, Title: "Day 3: Concurrency"},
	}}
	if err := d.State.LoadPlan(plan); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestRedirectsWithoutPlan(t *testing.T) {
	d := &deps.Deps{
		State:         session.New(nil),
		Gateway:       gateway.NewMockGateway(),
		NewCreatePlan: func() screen.Screen { return &stubScreen{name: "create"} },
	}
	cmd := New(d).Init()
	if cmd == nil {
		t.Fatal("expected redirect")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok || msg.Screen.Title() != "create" {
		t.Errorf("expected replace with create screen, got %#v", msg)
	}
}

func TestInitWithPlan(t *testing.T) {
	v := New(newTestDeps(t, gateway.NewMockGateway()))
	if cmd := v.Init(); cmd != nil {
		t.Error("no command expected with a plan loaded")
	}
	view := ansi.Strip(v.View(100, 40))
	for _, want := range []string{"Syntax", "Learn Go syntax", "Write hello world", "Day 1 of 3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestDayNavigation(t *testing.T) {
	d := newTestDeps(t, gateway.NewMockGateway())
	v := New(d)

	v.Update(specialKey(tea.KeyRight))
	if d.State.CurrentDay != 2 {
		t.Errorf("after right: day %d, want 2", d.State.CurrentDay)
	}
	v.Update(keyPress('3'))
	if d.State.CurrentDay != 3 {
		t.Errorf("after 3: day %d, want 3", d.State.CurrentDay)
	}
	v.Update(specialKey(tea.KeyRight))
	if d.State.CurrentDay != 3 {
		t.Errorf("right on last day moved to %d", d.State.CurrentDay)
	}
	v.Update(keyPress('9'))
	if d.State.CurrentDay != 3 {
		t.Errorf("unknown day selected: %d", d.State.CurrentDay)
	}
	v.Update(keyPress('h'))
	if d.State.CurrentDay != 2 {
		t.Errorf("after h: day %d, want 2", d.State.CurrentDay)
	}
}

func TestBriefLoads(t *testing.T) {
	gw := gateway.NewMockGateway().Push(gateway.OpGetTopicBrief, gateway.MockResult{Value: gateway.Brief("Variables and loops")})
	d := newTestDeps(t, gw)
	v := New(d)

	_, cmd := v.Update(specialKey(tea.KeyEnter))
	if !d.State.Brief.Loading() {
		t.Fatal("brief should be loading")
	}
	if !strings.Contains(ansi.Strip(v.View(100, 40)), "Preparing") {
		t.Error("loading indicator missing")
	}

	rs := results(cmd)
	if len(rs) != 1 {
		t.Fatalf("got %d results, want 1", len(rs))
	}
	if !rs[0].Apply(d.State) {
		t.Fatal("result not applied")
	}
	v.Update(rs[0])

	if gw.Calls[0].Text != "Day 1: Syntax" {
		t.Errorf("brief topic = %q", gw.Calls[0].Text)
	}
	if !strings.Contains(ansi.Strip(v.View(100, 60)), "Variables and loops") {
		t.Error("brief not rendered")
	}
}

func TestBriefFailureShowsAlert(t *testing.T) {
	gw := gateway.NewMockGateway().Push(gateway.OpGetTopicBrief, gateway.MockResult{
		Err: &gateway.TransportError{Op: gateway.OpGetTopicBrief},
	})
	d := newTestDeps(t, gw)
	v := New(d)

	_, cmd := v.Update(specialKey(tea.KeyEnter))
	for _, r := range results(cmd) {
		r.Apply(d.State)
		v.Update(r)
	}

	if !v.CapturesInput() {
		t.Fatal("alert should capture input")
	}
	if !strings.Contains(ansi.Strip(v.View(100, 40)), "Backend unreachable") {
		t.Error("alert message missing")
	}

	v.Update(specialKey(tea.KeyEnter))
	if v.CapturesInput() {
		t.Error("enter should dismiss the alert")
	}
	view := ansi.Strip(v.View(100, 60))
	if !strings.Contains(view, "Backend unreachable") {
		t.Error("failed brief should stay visible after the alert")
	}
	if !strings.Contains(view, "Press enter to try again") {
		t.Error("retry hint missing")
	}
}

func TestBriefFailureWithoutAlertRendersInline(t *testing.T) {
	gw := gateway.NewMockGateway().Push(gateway.OpGetTopicBrief, gateway.MockResult{
		Err: &gateway.TransportError{Op: gateway.OpGetTopicBrief, StatusCode: 500, Detail: "brief service down"},
	})
	d := newTestDeps(t, gw)
	v := New(d)

	_, cmd := v.Update(specialKey(tea.KeyEnter))
	// Applied while another screen was active, so this screen never saw it.
	for _, r := range results(cmd) {
		r.Apply(d.State)
	}

	if v.CapturesInput() {
		t.Fatal("no alert expected for a result the screen did not receive")
	}
	if !strings.Contains(ansi.Strip(v.View(100, 60)), "brief service down") {
		t.Error("failure must be rendered from the brief slot")
	}
}

func TestSpinnerResumesAfterChildScreen(t *testing.T) {
	gw := gateway.NewMockGateway().Push(gateway.OpGetTopicBrief, gateway.MockResult{Value: gateway.Brief("done")})
	d := newTestDeps(t, gw)
	v := New(d)

	_, cmd := v.Update(specialKey(tea.KeyEnter))
	msgs := messages(cmd)
	first := spinnerTicks(msgs)
	if len(first) != 1 {
		t.Fatalf("got %d spinner ticks, want 1", len(first))
	}

	resumed := spinnerTicks(messages(v.Resume()))
	if len(resumed) != 1 {
		t.Fatal("resume while loading should restart the spinner")
	}
	if _, next := v.Update(first[0]); next != nil {
		t.Error("tick of the interrupted chain must not keep running")
	}
	if _, next := v.Update(resumed[0]); next == nil {
		t.Error("resumed chain should keep ticking while loading")
	}

	for _, msg := range msgs {
		if r, ok := msg.(session.Result); ok {
			r.Apply(d.State)
		}
	}
	if v.Resume() != nil {
		t.Error("nothing to resume once the brief is loaded")
	}
}

func TestLeaveDiscardsBrief(t *testing.T) {
	gw := gateway.NewMockGateway().Push(gateway.OpGetTopicBrief, gateway.MockResult{Value: gateway.Brief("late")})
	d := newTestDeps(t, gw)
	v := New(d)

	_, cmd := v.Update(specialKey(tea.KeyEnter))
	v.Leave()
	if d.State.Brief.Status() != session.StatusIdle {
		t.Errorf("status = %v after leave", d.State.Brief.Status())
	}
	for _, r := range results(cmd) {
		if r.Apply(d.State) {
			t.Error("late brief applied after leave")
		}
	}
}

func TestShortcutsPushScreens(t *testing.T) {
	v := New(newTestDeps(t, gateway.NewMockGateway()))

	tests := []struct {
		key  rune
		want string
	}{
		{'e', "explain"},
		{'d', "doubt"},
		{'q', "quiz"},
	}
	for _, tt := range tests {
		_, cmd := v.Update(keyPress(tt.key))
		if cmd == nil {
			t.Fatalf("%c: no command", tt.key)
		}
		push, ok := cmd().(router.PushScreenMsg)
		if !ok {
			t.Fatalf("%c: expected PushScreenMsg", tt.key)
		}
		var got string
		switch push.Screen.(type) {
		case *explain.ExplainScreen:
			got = "explain"
		case *doubt.DoubtScreen:
			got = "doubt"
		case *quiz.QuizScreen:
			got = "quiz"
		}
		if got != tt.want {
			t.Errorf("%c pushed %T, want %s", tt.key, push.Screen, tt.want)
		}
	}
}
