package quiz

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned when no quiz exists for the given id.
var ErrNotFound = errors.New("quiz not found")

type Store interface {
	// SaveQuiz persists a write-once Record. The quiz id is generated
	// by the caller before saving.
	SaveQuiz(ctx context.Context, q Quiz, answers map[string]string, userID string) error
	// GetQuiz returns question data only. The answer key is never
	// included; grading goes through GetAnswers.
	GetQuiz(ctx context.Context, quizID string) (Quiz, error)
	GetAnswers(ctx context.Context, quizID string) (map[string]string, error)

	// SaveResult always inserts. Repeat submissions for the same quiz
	// each produce their own row.
	SaveResult(ctx context.Context, res Result) error
	LatestResult(ctx context.Context, quizID string) (Result, error)
	ListResultsByUser(ctx context.Context, userID string, limit int) ([]Result, error)
}

type memoryStore struct {
	mu      sync.RWMutex
	quizzes map[string]Record
	results []Result
}

func NewInMemoryStore() Store {
	return &memoryStore{quizzes: map[string]Record{}}
}

func (m *memoryStore) SaveQuiz(_ context.Context, q Quiz, answers map[string]string, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quizzes[q.QuizID] = Record{Quiz: q, Answers: answers, UserID: userID}
	return nil
}

func (m *memoryStore) GetQuiz(_ context.Context, quizID string) (Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.quizzes[quizID]
	if !ok {
		return Quiz{}, ErrNotFound
	}
	// copy questions so callers can't reach the stored record
	qs := make([]Question, len(rec.Questions))
	copy(qs, rec.Questions)
	return Quiz{QuizID: rec.QuizID, Topic: rec.Topic, Questions: qs}, nil
}

func (m *memoryStore) GetAnswers(_ context.Context, quizID string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.quizzes[quizID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make(map[string]string, len(rec.Answers))
	for k, v := range rec.Answers {
		out[k] = v
	}
	return out, nil
}

func (m *memoryStore) SaveResult(_ context.Context, res Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, res)
	return nil
}

func (m *memoryStore) LatestResult(_ context.Context, quizID string) (Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	best := -1
	for i, r := range m.results {
		if r.QuizID != quizID {
			continue
		}
		if best < 0 || r.CompletedAt >= m.results[best].CompletedAt {
			best = i
		}
	}
	if best < 0 {
		return Result{}, ErrNotFound
	}
	return m.results[best], nil
}

func (m *memoryStore) ListResultsByUser(_ context.Context, userID string, limit int) ([]Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Result{}
	for _, r := range m.results {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletedAt > out[j].CompletedAt })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
