package gateway

import (
	"fmt"
	"strings"
)

// Levels accepted by the backend's plan generator.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Levels lists the valid plan levels in display order.
var Levels = []string{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Plan duration bounds (inclusive), in days.
const (
	MinTotalDays = 1
	MaxTotalDays = 30
)

// DefaultNumQuestions is used when a quiz request does not set a count.
const DefaultNumQuestions = 5

// PlanRequest holds the learner's input for plan creation.
type PlanRequest struct {
	Subject     string
	Level       string
	TotalDays   int
	LearnerName string
}

// StudyPlan is a generated multi-day plan. Modules are in day order.
type StudyPlan struct {
	Subject       string            `json:"subject"`
	Level         string            `json:"level,omitempty"`
	DurationWeeks int               `json:"duration_weeks,omitempty"`
	LearnerName   string            `json:"learner_name,omitempty"`
	Modules       []Module          `json:"modules"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// Module is one day's unit of study. ID doubles as the day number.
type Module struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	DurationDays       int      `json:"duration_days,omitempty"`
	LearningObjectives []string `json:"learning_objectives"`
	DailyTasks         []string `json:"daily_tasks,omitempty"`
	Resources          []string `json:"resources,omitempty"`
}

// Task returns the module title without its "Day N: " prefix.
func (m Module) Task() string {
	return strings.TrimPrefix(m.Title, fmt.Sprintf("Day %d: ", m.ID))
}

// Theme returns the plan's theme metadata, or a generic label.
func (p *StudyPlan) Theme() string {
	if p == nil || p.Metadata == nil || p.Metadata["theme"] == "" {
		return "General Learning"
	}
	return p.Metadata["theme"]
}

// PlanSummary is the short description returned alongside a new plan.
type PlanSummary struct {
	Subject      string `json:"subject"`
	Level        string `json:"level"`
	TotalDays    int    `json:"total_days"`
	TotalModules int    `json:"total_modules"`
	Theme        string `json:"theme"`
}

// PlanResult is the outcome of CreatePlan.
type PlanResult struct {
	Plan    *StudyPlan
	Summary PlanSummary
}

// Explanation is a tutor-style explanation of a topic.
type Explanation struct {
	Topic         string `json:"topic"`
	ExplanationMD string `json:"explanation_md"`
}

// Answer is the response to a learner's doubt.
type Answer struct {
	Answer string `json:"answer"`
}

// Question is a single multiple-choice quiz question.
type Question struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
}

// HasOption reports whether opt is one of the question's options.
func (q Question) HasOption(opt string) bool {
	for _, o := range q.Options {
		if o == opt {
			return true
		}
	}
	return false
}

// Quiz is a generated set of questions for a module.
type Quiz struct {
	ModuleID    int        `json:"module_id"`
	ModuleTitle string     `json:"module_title,omitempty"`
	Questions   []Question `json:"questions"`
}

// Brief is a markdown document for a topic. It may embed mermaid blocks.
type Brief string
