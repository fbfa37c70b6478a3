package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/quizcraft/quizcraft-backend/internal/eventlog"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
	events *eventlog.Repo
}

// NewSQLStore wraps db. events may be nil to skip audit rows.
func NewSQLStore(db *sql.DB, driver string, events *eventlog.Repo) *SQLStore {
	return &SQLStore{db: db, driver: driver, events: events}
}

func (s *SQLStore) SaveQuiz(ctx context.Context, q Quiz, answers map[string]string, userID string) error {
	qj, err := json.Marshal(q.Questions)
	if err != nil {
		return err
	}
	aj, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO quizzes (quiz_id,topic,questions_json,answers_json,user_id,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		q.QuizID, q.Topic, string(qj), string(aj), nullable(userID), time.Now().Unix())
	if err != nil {
		return err
	}
	if s.events != nil {
		data, _ := json.Marshal(map[string]string{"topic": q.Topic, "userId": userID})
		_ = s.events.Append(ctx, eventlog.Event{Type: eventlog.TypeQuizGenerated, Key: q.QuizID, DataJSON: string(data)})
	}
	return nil
}

func (s *SQLStore) GetQuiz(ctx context.Context, quizID string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT quiz_id,topic,questions_json FROM quizzes WHERE quiz_id=$1`, quizID)
	var q Quiz
	var qjson string
	if err := row.Scan(&q.QuizID, &q.Topic, &qjson); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrNotFound
		}
		return Quiz{}, err
	}
	if err := json.Unmarshal([]byte(qjson), &q.Questions); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

func (s *SQLStore) GetAnswers(ctx context.Context, quizID string) (map[string]string, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT answers_json FROM quizzes WHERE quiz_id=$1`, quizID)
	var ajson string
	if err := row.Scan(&ajson); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var answers map[string]string
	if err := json.Unmarshal([]byte(ajson), &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

func (s *SQLStore) SaveResult(ctx context.Context, res Result) error {
	aj, err := json.Marshal(res.UserAnswers)
	if err != nil {
		return err
	}
	completed := res.CompletedAt
	if completed == 0 {
		completed = time.Now().Unix()
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO quiz_results (quiz_id,user_id,answers_json,score,completed_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		res.QuizID, nullable(res.UserID), string(aj), res.Score, completed)
	if err != nil {
		return err
	}
	if s.events != nil {
		data, _ := json.Marshal(map[string]any{"score": res.Score, "userId": res.UserID})
		_ = s.events.Append(ctx, eventlog.Event{Type: eventlog.TypeResultRecorded, Key: res.QuizID, DataJSON: string(data)})
	}
	return nil
}

func (s *SQLStore) LatestResult(ctx context.Context, quizID string) (Result, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT quiz_id,COALESCE(user_id,''),answers_json,score,completed_at
		 FROM quiz_results WHERE quiz_id=$1
		 ORDER BY completed_at DESC, id DESC LIMIT 1`, quizID)
	return scanResult(row)
}

func (s *SQLStore) ListResultsByUser(ctx context.Context, userID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT quiz_id,COALESCE(user_id,''),answers_json,score,completed_at
		 FROM quiz_results WHERE user_id=$1
		 ORDER BY completed_at DESC, id DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Result{}
	for rows.Next() {
		var r Result
		var ajson string
		if err := rows.Scan(&r.QuizID, &r.UserID, &ajson, &r.Score, &r.CompletedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(ajson), &r.UserAnswers); err != nil {
			r.UserAnswers = map[string]string{}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanResult(row rowScanner) (Result, error) {
	var r Result
	var ajson string
	if err := row.Scan(&r.QuizID, &r.UserID, &ajson, &r.Score, &r.CompletedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Result{}, ErrNotFound
		}
		return Result{}, err
	}
	if err := json.Unmarshal([]byte(ajson), &r.UserAnswers); err != nil {
		r.UserAnswers = map[string]string{}
	}
	return r, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
