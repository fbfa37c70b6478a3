package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	api "github.com/quizcraft/quizcraft-backend/internal/api/http"
	"github.com/quizcraft/quizcraft-backend/internal/auth"
	"github.com/quizcraft/quizcraft-backend/internal/config"
	"github.com/quizcraft/quizcraft-backend/internal/db"
	"github.com/quizcraft/quizcraft-backend/internal/eventlog"
	"github.com/quizcraft/quizcraft-backend/internal/grading"
	"github.com/quizcraft/quizcraft-backend/internal/history"
	"github.com/quizcraft/quizcraft-backend/internal/quiz"
	"github.com/quizcraft/quizcraft-backend/internal/quizgen"
)

func main() {
	cfg := config.FromEnv()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatal("db open failed", zap.Error(err))
	}

	events := eventlog.NewRepo(dbh)
	store := quiz.NewSQLStore(dbh, cfg.DBDriver, events)

	// --- Services ---
	ai := quizgen.NewOpenAIStrategy(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel,
		time.Duration(cfg.OpenAITimeoutSec)*time.Second)
	gen := quizgen.NewGenerator(ai, log)
	engine := grading.NewEngine(store)
	agg := history.NewAggregator(store, log)

	users := auth.NewUserStore(dbh)
	authSvc := auth.NewAuthService(cfg.AuthHMACSecret, cfg.CookieSecure)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/signup", api.SignupHandler(users, authSvc, log))
	r.Post("/auth/login", api.LoginHandler(users, authSvc, log))
	r.Post("/auth/logout", api.LogoutHandler(authSvc))

	// Quiz flow: works anonymously, tags owner when a session exists.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.OptionalIdentity(authSvc))

		pr.Get("/generate", api.GenerateQuizHandler(gen, store, log))
		pr.Post("/grade", api.GradeQuizHandler(engine, log))
		pr.Get("/quizzes/{quizID}", api.GetQuizHandler(store))
		pr.Get("/quizzes/{quizID}/results", api.GetQuizResultsHandler(store))
	})

	// History/dashboard: identity required.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireIdentity(authSvc))

		pr.Get("/auth/me", api.MeHandler())
		pr.Get("/history", api.HistoryHandler(agg))
		pr.Get("/history/stats", api.HistoryStatsHandler(agg))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("db", cfg.DBDriver),
		zap.Bool("ai_configured", ai.Configured()))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
