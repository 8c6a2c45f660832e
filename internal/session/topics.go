package session

import (
	"regexp"
	"strings"

	"github.com/abhisek/learnlab/internal/gateway"
)

// Objective phrasings the plan generator commonly uses. They are stripped in
// order to leave the topic itself.
var objectivePrefixes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^Master the fundamentals of \w+:?\s*`),
	regexp.MustCompile(`(?i)^Learn \w+\s+`),
	regexp.MustCompile(`(?i)^Master \w+\s+`),
	regexp.MustCompile(`(?i)^Explore advanced \w+\s+`),
}

// TopicFromObjective extracts a short topic name from a learning objective.
func TopicFromObjective(objective string) string {
	if _, after, ok := strings.Cut(objective, ":"); ok {
		if t := strings.TrimSpace(after); t != "" {
			return t
		}
		return objective
	}
	cleaned := objective
	for _, re := range objectivePrefixes {
		cleaned = re.ReplaceAllString(cleaned, "")
	}
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return objective
	}
	return cleaned
}

// QuickTopics returns the explainable topics of a module, one per learning
// objective, without duplicates.
func QuickTopics(m gateway.Module) []string {
	seen := make(map[string]bool, len(m.LearningObjectives))
	topics := make([]string, 0, len(m.LearningObjectives))
	for _, o := range m.LearningObjectives {
		t := TopicFromObjective(o)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		topics = append(topics, t)
	}
	return topics
}
