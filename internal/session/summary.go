package session

// QuizSummary holds the data displayed on the quiz results screen.
type QuizSummary struct {
	ModuleID    int
	ModuleTitle string
	Total       int
	Correct     int
	Accuracy    float64
	Items       []QuizReviewItem
}

// QuizReviewItem is one answered question in the results review.
type QuizReviewItem struct {
	Question    string
	Chosen      string // empty if unanswered
	Answer      string
	Correct     bool
	Explanation string
}

// Summary builds the results review for the run.
func (q *QuizRun) Summary() *QuizSummary {
	qs := q.Questions()
	sum := &QuizSummary{
		ModuleID: q.ModuleID,
		Total:    len(qs),
		Correct:  q.Score(),
		Items:    make([]QuizReviewItem, 0, len(qs)),
	}
	if q.Quiz != nil {
		sum.ModuleTitle = q.Quiz.ModuleTitle
	}
	for i, question := range qs {
		chosen := q.Answers[i]
		sum.Items = append(sum.Items, QuizReviewItem{
			Question:    question.Question,
			Chosen:      chosen,
			Answer:      question.Answer,
			Correct:     chosen != "" && chosen == question.Answer,
			Explanation: question.Explanation,
		})
	}
	if sum.Total > 0 {
		sum.Accuracy = float64(sum.Correct) / float64(sum.Total)
	}
	return sum
}
