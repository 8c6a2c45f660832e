package session

import (
	"errors"

	"go.uber.org/zap"

	"github.com/abhisek/learnlab/internal/gateway"
)

var (
	// ErrNoPlan is returned when an operation needs a loaded plan.
	ErrNoPlan = errors.New("no study plan loaded")

	// ErrNoAnswer is returned by Advance before the current question is answered.
	ErrNoAnswer = errors.New("select an answer first")

	// ErrNotInProgress is returned when a quiz action is attempted outside a run.
	ErrNotInProgress = errors.New("quiz is not in progress")

	// ErrInvalidOption is returned for a step other than the current one or an
	// option the question does not offer.
	ErrInvalidOption = errors.New("invalid quiz option")

	// ErrEmptyQuiz is recorded when the backend returns a quiz with no questions.
	ErrEmptyQuiz = errors.New("the generated quiz has no questions")
)

// SessionState is the single in-memory record of the learner's study
// session. It is owned by the UI loop: fetches run elsewhere and their
// results are applied here through Result.Apply.
type SessionState struct {
	// Plan is the loaded study plan (nil before one is created).
	Plan *gateway.StudyPlan

	// CurrentDay is the id of the module being studied.
	CurrentDay int

	// Brief holds the topic brief for the current day.
	Brief Slot[gateway.Brief]

	// Explanation holds the last requested topic explanation.
	Explanation Slot[*gateway.Explanation]

	// Doubt holds the answer to the last asked question.
	Doubt Slot[*gateway.Answer]

	// Quiz is the current quiz run.
	Quiz QuizRun

	log *zap.Logger
}

// New creates an empty session. A nil logger discards output.
func New(log *zap.Logger) *SessionState {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionState{log: log}
}

func (s *SessionState) logger() *zap.Logger {
	if s.log == nil {
		return zap.NewNop()
	}
	return s.log
}
