package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/learnlab/internal/router"
	"github.com/abhisek/learnlab/internal/screen"
	"github.com/abhisek/learnlab/internal/session"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "quiz" }
func (s *stubScreen) Title() string                          { return "Quiz" }

func testSummary() *session.QuizSummary {
	return &session.QuizSummary{
		ModuleID:    2,
		ModuleTitle: "Day 2: Types",
		Total:       2,
		Correct:     1,
		Accuracy:    0.5,
		Items: []session.QuizReviewItem{
			{Question: "Zero value of a pointer?", Chosen: "nil", Answer: "nil", Correct: true},
			{Question: "Can a struct embed an interface?", Chosen: "No", Answer: "Yes", Explanation: "Embedding promotes the method set."},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary(), nil)
	if s.Title() != "Quiz Results" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz Results")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	view := ansi.Strip(New(testSummary(), nil).View(100, 40))
	for _, want := range []string{"Correct: 1", "Accuracy: 50%", "Zero value of a pointer?", "Correct:     Yes", "method set"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_Perfect(t *testing.T) {
	sum := &session.QuizSummary{Total: 3, Correct: 3, Accuracy: 1}
	if !strings.Contains(New(sum, nil).View(80, 24), "Perfect score!") {
		t.Error("perfect score headline missing")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSummary(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testSummary(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_Retake(t *testing.T) {
	calls := 0
	s := New(testSummary(), func() screen.Screen {
		calls++
		return &stubScreen{}
	})
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a command on r")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected ReplaceScreenMsg")
	}
	if calls != 1 {
		t.Errorf("retake factory called %d times", calls)
	}

	if _, cmd := New(testSummary(), nil).Update(tea.KeyPressMsg{Code: 'r', Text: "r"}); cmd != nil {
		t.Error("r without retake should do nothing")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	if n := len(New(testSummary(), nil).KeyHints()); n != 2 {
		t.Errorf("KeyHints length = %d, want 2", n)
	}
	if n := len(New(testSummary(), func() screen.Screen { return nil }).KeyHints()); n != 3 {
		t.Errorf("KeyHints with retake = %d, want 3", n)
	}
}
