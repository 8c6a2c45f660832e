package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/learnlab/internal/gateway"
)

// QuizPhase represents the current phase of a quiz run.
type QuizPhase int

const (
	QuizNotStarted QuizPhase = iota // No questions yet, or the last load failed
	QuizLoading                     // Waiting for generated questions
	QuizInProgress                  // Answering questions
	QuizCompleted                   // All questions answered
)

func (p QuizPhase) String() string {
	switch p {
	case QuizNotStarted:
		return "not-started"
	case QuizLoading:
		return "loading"
	case QuizInProgress:
		return "in-progress"
	case QuizCompleted:
		return "completed"
	}
	return fmt.Sprintf("QuizPhase(%d)", int(p))
}

// QuizRun tracks one pass through a generated quiz. Navigation is forward
// only.
type QuizRun struct {
	// Phase is the current phase of the run.
	Phase QuizPhase

	// ModuleID is the module the quiz was requested for.
	ModuleID int

	// Quiz holds the questions once loaded.
	Quiz *gateway.Quiz

	// CurrentStep is the index of the question being answered.
	CurrentStep int

	// Answers maps question index to the chosen option.
	Answers map[int]string

	// Err is the failure of the last load, shown until the learner retries.
	Err error

	ticket Ticket
}

// Reset returns the run to not-started. A load in flight becomes stale.
func (q *QuizRun) Reset() {
	t := q.ticket + 1
	*q = QuizRun{ticket: t}
}

// Questions returns the loaded questions.
func (q *QuizRun) Questions() []gateway.Question {
	if q.Quiz == nil {
		return nil
	}
	return q.Quiz.Questions
}

// CurrentQuestion returns the question at CurrentStep.
func (q *QuizRun) CurrentQuestion() (gateway.Question, bool) {
	qs := q.Questions()
	if q.Phase != QuizInProgress || q.CurrentStep < 0 || q.CurrentStep >= len(qs) {
		return gateway.Question{}, false
	}
	return qs[q.CurrentStep], true
}

// Answered reports whether the current question has a chosen option.
func (q *QuizRun) Answered() bool {
	_, ok := q.Answers[q.CurrentStep]
	return ok
}

// IsLast reports whether the current question is the final one.
func (q *QuizRun) IsLast() bool {
	return q.CurrentStep == len(q.Questions())-1
}

// SelectOption records option as the answer to step. Only the current step
// of a run in progress can be answered; a later choice overwrites an
// earlier one.
func (q *QuizRun) SelectOption(step int, option string) error {
	if q.Phase != QuizInProgress {
		return ErrNotInProgress
	}
	if step != q.CurrentStep {
		return fmt.Errorf("%w: step %d is not the current step %d", ErrInvalidOption, step, q.CurrentStep)
	}
	cur, ok := q.CurrentQuestion()
	if !ok || !cur.HasOption(option) {
		return fmt.Errorf("%w: %q", ErrInvalidOption, option)
	}
	q.Answers[step] = option
	return nil
}

// Advance moves to the next question, or completes the run after the last.
func (q *QuizRun) Advance() error {
	if q.Phase != QuizInProgress {
		return ErrNotInProgress
	}
	if !q.Answered() {
		return ErrNoAnswer
	}
	if q.IsLast() {
		q.Phase = QuizCompleted
		return nil
	}
	q.CurrentStep++
	return nil
}

// Score counts questions whose chosen option equals the correct answer.
func (q *QuizRun) Score() int {
	score := 0
	for i, question := range q.Questions() {
		if a, ok := q.Answers[i]; ok && a == question.Answer {
			score++
		}
	}
	return score
}

// QuizResult carries a generated quiz.
type QuizResult struct {
	Ticket   Ticket
	ModuleID int
	Quiz     *gateway.Quiz
	Err      error
}

func (r QuizResult) Apply(s *SessionState) bool {
	q := &s.Quiz
	if q.Phase != QuizLoading || r.Ticket != q.ticket {
		s.logger().Debug("stale result discarded", zap.String("slot", "quiz"), zap.Uint64("ticket", uint64(r.Ticket)))
		return false
	}
	err := r.Err
	if err == nil && (r.Quiz == nil || len(r.Quiz.Questions) == 0) {
		err = ErrEmptyQuiz
	}
	if err != nil {
		q.Phase = QuizNotStarted
		q.Err = err
		s.logger().Warn("quiz load failed", zap.Int("module_id", r.ModuleID), zap.Error(err))
		return true
	}
	q.Phase = QuizInProgress
	q.Quiz = r.Quiz
	q.CurrentStep = 0
	q.Answers = make(map[int]string)
	q.Err = nil
	return true
}

// StartQuiz begins a fresh run for moduleID. Questions are always
// regenerated; numQuestions <= 0 asks for the backend default.
func StartQuiz(s *SessionState, gw gateway.Gateway, moduleID, numQuestions int) (Fetch, error) {
	if !s.HasPlan() {
		return nil, ErrNoPlan
	}
	if _, ok := s.Module(moduleID); !ok {
		return nil, &gateway.ValidationError{Field: "module_id", Reason: fmt.Sprintf("no module %d in plan", moduleID)}
	}

	s.Quiz.Reset()
	s.Quiz.Phase = QuizLoading
	s.Quiz.ModuleID = moduleID
	t := s.Quiz.ticket

	return func(ctx context.Context) Result {
		quiz, err := gw.GenerateQuiz(ctx, moduleID, numQuestions)
		return QuizResult{Ticket: t, ModuleID: moduleID, Quiz: quiz, Err: err}
	}, nil
}
