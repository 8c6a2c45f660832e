package gateway

import (
	"fmt"
	"slices"
	"strings"
)

// normalizePlanRequest trims inputs, defaults the level and enforces the
// plan form's constraints.
func normalizePlanRequest(req PlanRequest) (PlanRequest, error) {
	req.Subject = strings.TrimSpace(req.Subject)
	req.LearnerName = strings.TrimSpace(req.LearnerName)
	req.Level = strings.ToLower(strings.TrimSpace(req.Level))

	if req.Subject == "" {
		return req, &ValidationError{Field: "subject", Reason: "required"}
	}
	if req.LearnerName == "" {
		return req, &ValidationError{Field: "learner_name", Reason: "required"}
	}
	if req.TotalDays < MinTotalDays || req.TotalDays > MaxTotalDays {
		return req, &ValidationError{
			Field:  "total_days",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", MinTotalDays, MaxTotalDays, req.TotalDays),
		}
	}
	if req.Level == "" {
		req.Level = LevelBeginner
	}
	if !slices.Contains(Levels, req.Level) {
		return req, &ValidationError{
			Field:  "level",
			Reason: fmt.Sprintf("must be one of %s", strings.Join(Levels, ", ")),
		}
	}
	return req, nil
}

// RequireText trims value and returns a ValidationError for field when
// nothing is left.
func RequireText(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", &ValidationError{Field: field, Reason: "required"}
	}
	return v, nil
}

// ValidatePlan checks the invariants a plan must satisfy before the client
// can navigate it: at least one module and unique positive ids.
func ValidatePlan(p *StudyPlan) error {
	if p == nil {
		return fmt.Errorf("study plan is missing")
	}
	if len(p.Modules) == 0 {
		return fmt.Errorf("study plan has no modules")
	}
	seen := make(map[int]bool, len(p.Modules))
	for _, m := range p.Modules {
		if m.ID <= 0 {
			return fmt.Errorf("module %q has non-positive id %d", m.Title, m.ID)
		}
		if seen[m.ID] {
			return fmt.Errorf("duplicate module id %d", m.ID)
		}
		seen[m.ID] = true
	}
	return nil
}

// ValidateQuiz checks that every question's answer is one of its options.
func ValidateQuiz(q *Quiz) error {
	if q == nil || len(q.Questions) == 0 {
		return fmt.Errorf("quiz has no questions")
	}
	for i, qq := range q.Questions {
		if len(qq.Options) < 2 {
			return fmt.Errorf("question %d has %d options", i+1, len(qq.Options))
		}
		if !qq.HasOption(qq.Answer) {
			return fmt.Errorf("question %d: answer %q is not among its options", i+1, qq.Answer)
		}
	}
	return nil
}
