package router

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnlab/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	s3 := &stubScreen{title: "third"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
}

// leavingScreen records Leave calls.
type leavingScreen struct {
	stubScreen
	left int
}

func (s *leavingScreen) Leave() { s.left++ }

func TestPopCallsLeave(t *testing.T) {
	r := New(&stubScreen{title: "first"})
	s2 := &leavingScreen{stubScreen: stubScreen{title: "second"}}
	r.Push(s2)

	r.Update(PopScreenMsg{})

	if s2.left != 1 {
		t.Errorf("expected Leave to run once on pop, got %d", s2.left)
	}
}

func TestReplaceCallsLeave(t *testing.T) {
	s1 := &leavingScreen{stubScreen: stubScreen{title: "first"}}
	r := New(s1)

	r.Replace(&stubScreen{title: "second"})

	if s1.left != 1 {
		t.Errorf("expected Leave to run once on replace, got %d", s1.left)
	}
}

func TestPopAtBottomDoesNotLeave(t *testing.T) {
	s1 := &leavingScreen{stubScreen: stubScreen{title: "first"}}
	r := New(s1)

	r.Pop()

	if s1.left != 0 {
		t.Errorf("expected no Leave at bottom of stack, got %d", s1.left)
	}
}

type resumingScreen struct {
	stubScreen
	resumed int
}

type resumeMsg struct{}

func (s *resumingScreen) Resume() tea.Cmd {
	s.resumed++
	return func() tea.Msg { return resumeMsg{} }
}

func TestPopResumesScreenBelow(t *testing.T) {
	s1 := &resumingScreen{stubScreen: stubScreen{title: "first"}}
	r := New(s1)
	r.Push(&stubScreen{title: "second"})

	if s1.resumed != 0 {
		t.Fatal("push must not resume the covered screen")
	}

	cmd := r.Update(PopScreenMsg{})
	if s1.resumed != 1 {
		t.Errorf("expected Resume to run once on pop, got %d", s1.resumed)
	}
	if cmd == nil {
		t.Fatal("expected the Resume command to be returned")
	}
	if _, ok := cmd().(resumeMsg); !ok {
		t.Error("unexpected command returned from pop")
	}
}

func TestTrail(t *testing.T) {
	r := New(&stubScreen{title: ""})
	r.Replace(&stubScreen{title: "Home"})
	r.Push(&stubScreen{title: "Study Plan"})
	r.Push(&stubScreen{title: "Quiz"})

	got := strings.Join(r.Trail(), "/")
	if got != "Home/Study Plan/Quiz" {
		t.Errorf("Trail() = %q", got)
	}

	r.Pop()
	if got := strings.Join(r.Trail(), "/"); got != "Home/Study Plan" {
		t.Errorf("Trail() after pop = %q", got)
	}
}
