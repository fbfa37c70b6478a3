package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quizcraft/quizcraft-backend/internal/auth"
	"github.com/quizcraft/quizcraft-backend/internal/grading"
	"github.com/quizcraft/quizcraft-backend/internal/quiz"
	"github.com/quizcraft/quizcraft-backend/internal/quizgen"
)

// GET /generate?topic=...
func GenerateQuizHandler(gen *quizgen.Generator, store quiz.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topic := r.URL.Query().Get("topic")
		if topic == "" {
			writeError(w, http.StatusBadRequest, "Topic is required")
			return
		}

		set, generatedBy := gen.Generate(r.Context(), topic)

		q := quiz.Quiz{
			QuizID:    uuid.NewString(),
			Topic:     topic,
			Questions: set.Questions,
		}
		userID := auth.SubjectFromContext(r.Context())
		if err := store.SaveQuiz(r.Context(), q, set.Answers, userID); err != nil {
			log.Error("save quiz failed", zap.String("quizId", q.QuizID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to save quiz")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"quizId":      q.QuizID,
			"questions":   q.Questions,
			"generatedBy": generatedBy,
		})
	}
}

// POST /grade?quizId=...  body: {"answers": {"1": "..."}}
func GradeQuizHandler(engine *grading.Engine, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID := r.URL.Query().Get("quizId")
		if quizID == "" {
			writeError(w, http.StatusBadRequest, "Quiz ID is required")
			return
		}

		var req struct {
			Answers map[string]string `json:"answers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Answers == nil {
			writeError(w, http.StatusBadRequest, "Answers are required")
			return
		}

		userID := auth.SubjectFromContext(r.Context())
		res, err := engine.Grade(r.Context(), quizID, req.Answers, userID)
		switch {
		case errors.Is(err, grading.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "Answers are required")
		case errors.Is(err, quiz.ErrNotFound):
			writeError(w, http.StatusNotFound, "Quiz not found")
		case err != nil:
			log.Error("grade failed", zap.String("quizId", quizID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to grade quiz")
		default:
			writeJSON(w, http.StatusOK, res)
		}
	}
}

// GET /quizzes/{quizID} returns question data only, never the answer key.
func GetQuizHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "quizID")
		q, err := store.GetQuiz(r.Context(), id)
		if err != nil {
			if errors.Is(err, quiz.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Quiz not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to fetch quiz")
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

// GET /quizzes/{quizID}/results returns feedback for the most recent
// submission, or an empty list when nothing was submitted yet.
func GetQuizResultsHandler(store quiz.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "quizID")

		res, err := store.LatestResult(r.Context(), id)
		if err != nil {
			writeJSON(w, http.StatusOK, []grading.FeedbackItem{})
			return
		}
		key, err := store.GetAnswers(r.Context(), id)
		if err != nil {
			writeJSON(w, http.StatusOK, []grading.FeedbackItem{})
			return
		}
		writeJSON(w, http.StatusOK, grading.Score(key, res.UserAnswers).Feedback)
	}
}
