package history

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/quizcraft/quizcraft-backend/internal/quiz"
	"go.uber.org/zap"
)

const maxEntries = 50

// Entry is a graded result joined with its quiz's topic and size.
type Entry struct {
	QuizID         string `json:"quizId"`
	Topic          string `json:"topic"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	Percentage     int    `json:"percentage"`
	CompletedAt    int64  `json:"completedAt"`
}

// Aggregator builds per-user history views. History is supplementary,
// so fetch failures collapse to an empty list instead of erroring.
type Aggregator struct {
	store quiz.Store
	log   *zap.Logger
}

func NewAggregator(store quiz.Store, log *zap.Logger) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregator{store: store, log: log}
}

// History returns the user's results newest-first, capped at 50,
// joined with quiz topics. Results whose quiz record is gone are
// skipped. topicFilter, when non-empty, keeps entries whose topic
// contains it case-insensitively.
func (a *Aggregator) History(ctx context.Context, userID, topicFilter string) []Entry {
	results, err := a.store.ListResultsByUser(ctx, userID, maxEntries)
	if err != nil {
		a.log.Warn("history fetch failed", zap.String("userId", userID), zap.Error(err))
		return []Entry{}
	}

	filter := strings.ToLower(topicFilter)
	entries := []Entry{}
	for _, r := range results {
		q, err := a.store.GetQuiz(ctx, r.QuizID)
		if err != nil {
			if !errors.Is(err, quiz.ErrNotFound) {
				a.log.Warn("history join failed", zap.String("quizId", r.QuizID), zap.Error(err))
			}
			continue // orphaned result
		}
		if filter != "" && !strings.Contains(strings.ToLower(q.Topic), filter) {
			continue
		}
		total := len(q.Questions)
		entries = append(entries, Entry{
			QuizID:         r.QuizID,
			Topic:          q.Topic,
			Score:          r.Score,
			TotalQuestions: total,
			Percentage:     percentage(r.Score, total),
			CompletedAt:    r.CompletedAt,
		})
	}
	return entries
}

func percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}
