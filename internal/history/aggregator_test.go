package history

import (
	"context"
	"testing"

	"github.com/quizcraft/quizcraft-backend/internal/quiz"
)

func fiveQuestions() []quiz.Question {
	qs := make([]quiz.Question, 5)
	for i := range qs {
		qs[i] = quiz.Question{ID: i + 1, Text: "Q?", Options: []string{"a", "b", "c", "d"}}
	}
	return qs
}

func seed(t *testing.T, store quiz.Store, quizID, topic string, score int, completedAt int64) {
	t.Helper()
	q := quiz.Quiz{QuizID: quizID, Topic: topic, Questions: fiveQuestions()}
	if err := store.SaveQuiz(context.Background(), q, map[string]string{"1": "a"}, "u1"); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveResult(context.Background(), quiz.Result{
		QuizID: quizID, UserID: "u1", Score: score, CompletedAt: completedAt,
		UserAnswers: map[string]string{},
	}); err != nil {
		t.Fatal(err)
	}
}

func TestHistoryPercentage(t *testing.T) {
	store := quiz.NewInMemoryStore()
	seed(t, store, "q1", "go", 4, 100)
	agg := NewAggregator(store, nil)

	entries := agg.History(context.Background(), "u1", "")
	if len(entries) != 1 {
		t.Fatalf("len = %d", len(entries))
	}
	e := entries[0]
	if e.TotalQuestions != 5 || e.Percentage != 80 {
		t.Fatalf("entry = %+v, want 4/5 = 80%%", e)
	}
}

func TestHistoryZeroQuestionsNoDivide(t *testing.T) {
	store := quiz.NewInMemoryStore()
	q := quiz.Quiz{QuizID: "empty", Topic: "void"}
	_ = store.SaveQuiz(context.Background(), q, map[string]string{}, "u1")
	_ = store.SaveResult(context.Background(), quiz.Result{QuizID: "empty", UserID: "u1"})

	entries := NewAggregator(store, nil).History(context.Background(), "u1", "")
	if len(entries) != 1 || entries[0].Percentage != 0 {
		t.Fatalf("entries = %+v, want one entry at 0%%", entries)
	}
}

func TestHistorySkipsOrphanedResults(t *testing.T) {
	store := quiz.NewInMemoryStore()
	seed(t, store, "q1", "go", 3, 100)
	// result without a quiz record
	_ = store.SaveResult(context.Background(), quiz.Result{QuizID: "gone", UserID: "u1", CompletedAt: 200})

	entries := NewAggregator(store, nil).History(context.Background(), "u1", "")
	if len(entries) != 1 || entries[0].QuizID != "q1" {
		t.Fatalf("entries = %+v, want only q1", entries)
	}
}

func TestHistoryTopicFilterCaseInsensitive(t *testing.T) {
	store := quiz.NewInMemoryStore()
	seed(t, store, "q1", "JavaScript Basics", 3, 100)
	seed(t, store, "q2", "Biology", 2, 200)

	entries := NewAggregator(store, nil).History(context.Background(), "u1", "javascript")
	if len(entries) != 1 || entries[0].Topic != "JavaScript Basics" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	store := quiz.NewInMemoryStore()
	seed(t, store, "q1", "go", 1, 100)
	seed(t, store, "q2", "go", 2, 200)

	entries := NewAggregator(store, nil).History(context.Background(), "u1", "")
	if len(entries) != 2 || entries[0].QuizID != "q2" {
		t.Fatalf("entries = %+v, want q2 first", entries)
	}
}

func TestHistoryEmptyForUnknownUser(t *testing.T) {
	entries := NewAggregator(quiz.NewInMemoryStore(), nil).History(context.Background(), "nobody", "")
	if entries == nil || len(entries) != 0 {
		t.Fatalf("entries = %#v, want empty non-nil slice", entries)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Entry{{Percentage: 80}, {Percentage: 60}, {Percentage: 100}})
	if s.TotalQuizzes != 3 || s.AverageScore != 80 || s.BestScore != 100 {
		t.Fatalf("summary = %+v", s)
	}
	if z := Summarize(nil); z.TotalQuizzes != 0 || z.AverageScore != 0 || z.BestScore != 0 {
		t.Fatalf("empty summary = %+v", z)
	}
}

func TestTopicStatsImprovement(t *testing.T) {
	// newest first, as History returns them
	entries := []Entry{
		{Topic: "go", Percentage: 90, CompletedAt: 300},
		{Topic: "js", Percentage: 50, CompletedAt: 250},
		{Topic: "go", Percentage: 60, CompletedAt: 200},
		{Topic: "go", Percentage: 40, CompletedAt: 100},
	}
	stats := TopicStats(entries)
	if len(stats) != 2 {
		t.Fatalf("stats = %+v", stats)
	}
	goStat := stats[0]
	if goStat.Topic != "go" || goStat.Attempts != 3 || goStat.Best != 90 {
		t.Fatalf("go stat = %+v", goStat)
	}
	// latest 90 minus first 40
	if goStat.Improvement != 50 {
		t.Fatalf("improvement = %d, want 50", goStat.Improvement)
	}
	if goStat.Average != 63 { // round((90+60+40)/3)
		t.Fatalf("average = %d, want 63", goStat.Average)
	}
}
