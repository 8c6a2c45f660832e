// Package gateway is the boundary to the remote study-plan backend. Every
// operation is a single JSON request/response exchange: no retries, no caching.
package gateway

import (
	"context"
)

// Operation names, used for logging and the call log.
const (
	OpCreatePlan    = "create-plan"
	OpExplainTopic  = "explain-topic"
	OpAskDoubt      = "ask-doubt"
	OpGenerateQuiz  = "generate-quiz"
	OpGetTopicBrief = "topic-brief"
	OpHealth        = "health"
)

// Gateway abstracts the backend's content generation operations.
type Gateway interface {
	// CreatePlan generates a new study plan.
	CreatePlan(ctx context.Context, req PlanRequest) (*PlanResult, error)

	// ExplainTopic returns an explanation of topic in the context of a module.
	ExplainTopic(ctx context.Context, moduleID int, topic string) (*Explanation, error)

	// AskDoubt answers a learner question in the context of a module.
	AskDoubt(ctx context.Context, moduleID int, question string) (*Answer, error)

	// GenerateQuiz builds a multiple-choice quiz for a module.
	// numQuestions <= 0 selects DefaultNumQuestions.
	GenerateQuiz(ctx context.Context, moduleID int, numQuestions int) (*Quiz, error)

	// GetTopicBrief returns a markdown brief for topic.
	GetTopicBrief(ctx context.Context, topic string) (Brief, error)

	// Health returns the backend's liveness message.
	Health(ctx context.Context) (string, error)
}
