package quiz

// Question is what quiz takers see: four options, exactly one of
// which matches the answer key entry for its id.
type Question struct {
	ID      int      `json:"id"` // 1-based position within the quiz
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

type Quiz struct {
	QuizID    string     `json:"quizId"`
	Topic     string     `json:"topic"`
	Questions []Question `json:"questions"`
}

// Record is the persisted form: quiz plus its answer key and owner.
// Write-once; the key never leaves the store except via GetAnswers.
type Record struct {
	Quiz
	Answers   map[string]string `json:"answers"` // question id (as string) -> correct option
	UserID    string            `json:"userId,omitempty"`
	CreatedAt int64             `json:"createdAt"`
}

type Result struct {
	QuizID      string            `json:"quizId"`
	UserID      string            `json:"userId,omitempty"`
	UserAnswers map[string]string `json:"userAnswers"`
	Score       int               `json:"score"`
	CompletedAt int64             `json:"completedAt"`
}
