package http

import (
	"net/http"

	"github.com/quizcraft/quizcraft-backend/internal/auth"
	"github.com/quizcraft/quizcraft-backend/internal/history"
)

// GET /history?topic=... (identity required by middleware)
func HistoryHandler(agg *history.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		topic := r.URL.Query().Get("topic")
		writeJSON(w, http.StatusOK, agg.History(r.Context(), userID, topic))
	}
}

// GET /history/stats: dashboard summary plus per-topic grouping.
func HistoryStatsHandler(agg *history.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		entries := agg.History(r.Context(), userID, "")
		writeJSON(w, http.StatusOK, map[string]any{
			"summary": history.Summarize(entries),
			"topics":  history.TopicStats(entries),
		})
	}
}
