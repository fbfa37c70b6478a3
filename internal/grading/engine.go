package grading

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"github.com/quizcraft/quizcraft-backend/internal/quiz"
)

// ErrInvalidInput is returned when the submission is missing or not
// a question-id -> option mapping.
var ErrInvalidInput = errors.New("answers are required")

// NotAnswered is the sentinel recorded for questions the caller left
// blank. It can never equal a real option, so blanks always grade
// incorrect.
const NotAnswered = "Not answered"

type FeedbackItem struct {
	ID            int    `json:"id"`
	YourAnswer    string `json:"yourAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
}

type Result struct {
	Correct  int            `json:"correct"`
	Total    int            `json:"total"`
	Feedback []FeedbackItem `json:"feedback"`
}

// Engine grades a submission against the stored answer key and
// records the outcome. Grading the same submission twice writes two
// result rows; the computation itself is deterministic.
type Engine struct {
	store quiz.Store
}

func NewEngine(store quiz.Store) *Engine {
	return &Engine{store: store}
}

// Grade fetches the answer key for quizID, scores submitted against
// it by exact string equality in question order, persists a
// quiz.Result with the raw score, and returns the feedback. A nil
// submission fails with ErrInvalidInput before any lookup; an
// unknown quizID fails with quiz.ErrNotFound and writes nothing.
func (e *Engine) Grade(ctx context.Context, quizID string, submitted map[string]string, userID string) (Result, error) {
	if submitted == nil {
		return Result{}, ErrInvalidInput
	}

	key, err := e.store.GetAnswers(ctx, quizID)
	if err != nil {
		return Result{}, err
	}

	res := Score(key, submitted)

	if err := e.store.SaveResult(ctx, quiz.Result{
		QuizID:      quizID,
		UserID:      userID,
		UserAnswers: submitted,
		Score:       res.Correct,
	}); err != nil {
		return Result{}, err
	}
	return res, nil
}

// Score is the pure comparison pass: correct counts exact matches,
// total is the size of the key, feedback follows question order.
func Score(key, submitted map[string]string) Result {
	res := Result{Total: len(key), Feedback: make([]FeedbackItem, 0, len(key))}
	for _, id := range orderedIDs(key) {
		answer, ok := submitted[id]
		if !ok || answer == "" {
			answer = NotAnswered
		}
		if answer == key[id] {
			res.Correct++
		}
		n, _ := strconv.Atoi(id)
		res.Feedback = append(res.Feedback, FeedbackItem{
			ID:            n,
			YourAnswer:    answer,
			CorrectAnswer: key[id],
		})
	}
	return res
}

// orderedIDs sorts key ids numerically so feedback tracks question
// order regardless of map iteration.
func orderedIDs(key map[string]string) []string {
	ids := make([]string, 0, len(key))
	for id := range key {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, _ := strconv.Atoi(ids[i])
		b, _ := strconv.Atoi(ids[j])
		if a != b {
			return a < b
		}
		return ids[i] < ids[j]
	})
	return ids
}
