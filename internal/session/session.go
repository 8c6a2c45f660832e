package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/learnlab/internal/gateway"
)

// LoadPlan makes plan the active plan. Any previous plan, fetched content
// and quiz run are discarded and the first module becomes the current day.
func (s *SessionState) LoadPlan(plan *gateway.StudyPlan) error {
	if plan == nil {
		return ErrNoPlan
	}
	if err := gateway.ValidatePlan(plan); err != nil {
		return fmt.Errorf("load plan: %w", err)
	}

	s.Plan = plan
	s.CurrentDay = plan.Modules[0].ID
	s.Brief.Reset()
	s.Explanation.Reset()
	s.Doubt.Reset()
	s.Quiz.Reset()

	s.logger().Info("plan loaded",
		zap.String("subject", plan.Subject),
		zap.Int("modules", len(plan.Modules)),
	)
	return nil
}

// SelectDay makes the module with id the current day and clears the brief.
// Unknown ids and the already-current day are ignored.
func (s *SessionState) SelectDay(id int) {
	if s.Plan == nil || id == s.CurrentDay || s.moduleIndex(id) < 0 {
		return
	}
	s.CurrentDay = id
	s.Brief.Reset()
	s.logger().Debug("day selected", zap.Int("day", id))
}

// HasPlan reports whether a plan is loaded.
func (s *SessionState) HasPlan() bool {
	return s.Plan != nil && len(s.Plan.Modules) > 0
}

// CurrentModule returns the module for CurrentDay.
func (s *SessionState) CurrentModule() (gateway.Module, bool) {
	i := s.moduleIndex(s.CurrentDay)
	if i < 0 {
		return gateway.Module{}, false
	}
	return s.Plan.Modules[i], true
}

// Module returns the module with id.
func (s *SessionState) Module(id int) (gateway.Module, bool) {
	i := s.moduleIndex(id)
	if i < 0 {
		return gateway.Module{}, false
	}
	return s.Plan.Modules[i], true
}

// Progress returns the position of the current day within the plan as a
// fraction in (0, 1], or 0 without a plan.
func (s *SessionState) Progress() float64 {
	i := s.moduleIndex(s.CurrentDay)
	if i < 0 {
		return 0
	}
	return float64(i+1) / float64(len(s.Plan.Modules))
}

// Position returns the 1-based position of the current day and the number
// of days in the plan. Both are 0 without a plan.
func (s *SessionState) Position() (day, total int) {
	i := s.moduleIndex(s.CurrentDay)
	if i < 0 {
		return 0, 0
	}
	return i + 1, len(s.Plan.Modules)
}

func (s *SessionState) moduleIndex(id int) int {
	if s.Plan == nil {
		return -1
	}
	for i, m := range s.Plan.Modules {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// Fetch performs a gateway call off the UI loop. It must not touch the
// session; the Result it returns is applied on the loop.
type Fetch func(ctx context.Context) Result

// Result is the outcome of a Fetch.
type Result interface {
	// Apply commits the outcome if its request is still the current one for
	// the slot and reports whether it did.
	Apply(s *SessionState) bool
}

// BriefResult carries a topic brief.
type BriefResult struct {
	Ticket Ticket
	Topic  string
	Brief  gateway.Brief
	Err    error
}

func (r BriefResult) Apply(s *SessionState) bool {
	return commit(s, &s.Brief, "brief", r.Ticket, r.Brief, r.Err)
}

// ExplanationResult carries a topic explanation.
type ExplanationResult struct {
	Ticket      Ticket
	Topic       string
	Explanation *gateway.Explanation
	Err         error
}

func (r ExplanationResult) Apply(s *SessionState) bool {
	return commit(s, &s.Explanation, "explanation", r.Ticket, r.Explanation, r.Err)
}

// DoubtResult carries the answer to a doubt.
type DoubtResult struct {
	Ticket   Ticket
	Question string
	Answer   *gateway.Answer
	Err      error
}

func (r DoubtResult) Apply(s *SessionState) bool {
	return commit(s, &s.Doubt, "doubt", r.Ticket, r.Answer, r.Err)
}

func commit[T any](s *SessionState, slot *Slot[T], name string, t Ticket, data T, err error) bool {
	var ok bool
	if err != nil {
		ok = slot.Fail(t, err)
	} else {
		ok = slot.Commit(t, data)
	}
	if !ok {
		s.logger().Debug("stale result discarded", zap.String("slot", name), zap.Uint64("ticket", uint64(t)))
	}
	return ok
}

// RequestBrief starts loading the brief for topic.
func RequestBrief(s *SessionState, gw gateway.Gateway, topic string) (Fetch, error) {
	topic, err := gateway.RequireText("topic", topic)
	if err != nil {
		return nil, err
	}
	t := s.Brief.Begin(topic)
	return func(ctx context.Context) Result {
		brief, err := gw.GetTopicBrief(ctx, topic)
		return BriefResult{Ticket: t, Topic: topic, Brief: brief, Err: err}
	}, nil
}

// RequestExplanation starts loading an explanation of topic within moduleID.
func RequestExplanation(s *SessionState, gw gateway.Gateway, moduleID int, topic string) (Fetch, error) {
	topic, err := gateway.RequireText("topic", topic)
	if err != nil {
		return nil, err
	}
	t := s.Explanation.Begin(topic)
	return func(ctx context.Context) Result {
		exp, err := gw.ExplainTopic(ctx, moduleID, topic)
		return ExplanationResult{Ticket: t, Topic: topic, Explanation: exp, Err: err}
	}, nil
}

// RequestDoubtAnswer starts loading the answer to question within moduleID.
func RequestDoubtAnswer(s *SessionState, gw gateway.Gateway, moduleID int, question string) (Fetch, error) {
	question, err := gateway.RequireText("question", question)
	if err != nil {
		return nil, err
	}
	t := s.Doubt.Begin(question)
	return func(ctx context.Context) Result {
		ans, err := gw.AskDoubt(ctx, moduleID, question)
		return DoubtResult{Ticket: t, Question: question, Answer: ans, Err: err}
	}, nil
}
