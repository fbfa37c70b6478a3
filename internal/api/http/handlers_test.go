package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/quizcraft/quizcraft-backend/internal/grading"
	"github.com/quizcraft/quizcraft-backend/internal/history"
	"github.com/quizcraft/quizcraft-backend/internal/quiz"
	"github.com/quizcraft/quizcraft-backend/internal/quizgen"
)

func testRouter(store quiz.Store) http.Handler {
	log := zap.NewNop()
	gen := quizgen.NewGenerator(quizgen.NewOpenAIStrategy("", "", "", 0), log)
	engine := grading.NewEngine(store)
	agg := history.NewAggregator(store, log)

	r := chi.NewRouter()
	r.Get("/generate", GenerateQuizHandler(gen, store, log))
	r.Post("/grade", GradeQuizHandler(engine, log))
	r.Get("/quizzes/{quizID}", GetQuizHandler(store))
	r.Get("/quizzes/{quizID}/results", GetQuizResultsHandler(store))
	r.Get("/history", HistoryHandler(agg))
	return r
}

func TestGenerateMissingTopic(t *testing.T) {
	rr := httptest.NewRecorder()
	testRouter(quiz.NewInMemoryStore()).ServeHTTP(rr, httptest.NewRequest("GET", "/generate", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rr.Body.Bytes(), &body)
	if body["message"] == "" {
		t.Fatalf("error body must carry a message: %s", rr.Body.String())
	}
}

func TestGenerateFallbackFlow(t *testing.T) {
	store := quiz.NewInMemoryStore()
	rr := httptest.NewRecorder()
	testRouter(store).ServeHTTP(rr, httptest.NewRequest("GET", "/generate?topic=javascript", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		QuizID      string          `json:"quizId"`
		Questions   []quiz.Question `json:"questions"`
		GeneratedBy string          `json:"generatedBy"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.GeneratedBy != "fallback" {
		t.Fatalf("generatedBy = %q", resp.GeneratedBy)
	}
	if len(resp.Questions) != 5 {
		t.Fatalf("got %d questions", len(resp.Questions))
	}
	if strings.Contains(rr.Body.String(), "answers") {
		t.Fatalf("generate response leaks answers: %s", rr.Body.String())
	}

	// the quiz must be persisted with its key, retrievable without it
	if _, err := store.GetQuiz(context.Background(), resp.QuizID); err != nil {
		t.Fatalf("quiz was not persisted: %v", err)
	}
	key, err := store.GetAnswers(context.Background(), resp.QuizID)
	if err != nil || len(key) != 5 {
		t.Fatalf("answer key missing: %v %v", key, err)
	}
}

func TestGradeEndpointStatuses(t *testing.T) {
	store := quiz.NewInMemoryStore()
	set, _ := quizgen.NewFallback().Generate(context.Background(), "javascript")
	_ = store.SaveQuiz(context.Background(), quiz.Quiz{QuizID: "q1", Topic: "javascript", Questions: set.Questions}, set.Answers, "")
	router := testRouter(store)

	cases := []struct {
		name   string
		target string
		body   string
		want   int
	}{
		{"missing quizId", "/grade", `{"answers":{}}`, 400},
		{"missing answers", "/grade?quizId=q1", `{}`, 400},
		{"bad body", "/grade?quizId=q1", `notjson`, 400},
		{"unknown quiz", "/grade?quizId=nope", `{"answers":{"1":"a"}}`, 404},
		{"ok", "/grade?quizId=q1", `{"answers":{"1":"Document Object Model"}}`, 200},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("POST", tc.target, strings.NewReader(tc.body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != tc.want {
			t.Errorf("%s: status = %d, want %d (%s)", tc.name, rr.Code, tc.want, rr.Body.String())
		}
	}
}

func TestGradeResponseShape(t *testing.T) {
	store := quiz.NewInMemoryStore()
	set, _ := quizgen.NewFallback().Generate(context.Background(), "javascript")
	_ = store.SaveQuiz(context.Background(), quiz.Quiz{QuizID: "q1", Topic: "javascript", Questions: set.Questions}, set.Answers, "")

	body := `{"answers":{"1":"Document Object Model","2":"push()","3":"wrong","4":"float","5":"Strict equality comparison"}}`
	rr := httptest.NewRecorder()
	testRouter(store).ServeHTTP(rr, httptest.NewRequest("POST", "/grade?quizId=q1", strings.NewReader(body)))
	if rr.Code != 200 {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	var res grading.Result
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Correct != 4 || res.Total != 5 || len(res.Feedback) != 5 {
		t.Fatalf("result = %+v", res)
	}
}

func TestGetQuizNotFound(t *testing.T) {
	rr := httptest.NewRecorder()
	testRouter(quiz.NewInMemoryStore()).ServeHTTP(rr, httptest.NewRequest("GET", "/quizzes/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestResultsEmptyWhenNoSubmission(t *testing.T) {
	store := quiz.NewInMemoryStore()
	set, _ := quizgen.NewFallback().Generate(context.Background(), "go")
	_ = store.SaveQuiz(context.Background(), quiz.Quiz{QuizID: "q1", Topic: "go", Questions: set.Questions}, set.Answers, "")

	rr := httptest.NewRecorder()
	testRouter(store).ServeHTTP(rr, httptest.NewRequest("GET", "/quizzes/q1/results", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Fatalf("body = %q, want empty list", got)
	}
}

func TestHistoryEmptyForAnonymous(t *testing.T) {
	rr := httptest.NewRecorder()
	testRouter(quiz.NewInMemoryStore()).ServeHTTP(rr, httptest.NewRequest("GET", "/history", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Fatalf("body = %q, want empty list", got)
	}
}
