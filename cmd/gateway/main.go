package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/trashquiz/trashquiz/internal/api/http"
	"github.com/trashquiz/trashquiz/internal/auth"
	authmw "github.com/trashquiz/trashquiz/internal/auth/middleware"
	"github.com/trashquiz/trashquiz/internal/catalog"
	"github.com/trashquiz/trashquiz/internal/config"
	"github.com/trashquiz/trashquiz/internal/db"
	"github.com/trashquiz/trashquiz/internal/quiz"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- Catalog ---
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		// A broken catalog is reported as "no items available", it never
		// takes the service down.
		log.Printf("catalog load failed: %v; continuing with no items", err)
		cat = &catalog.Catalog{}
	}
	if cat.Empty() {
		log.Printf("catalog at %s has no items; quiz and wizard will report empty", cfg.CatalogPath)
	}

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	stores := api.Stores{
		User:  quiz.NewSQLStore(dbh),
		Guest: quiz.NewMemoryStore(),
	}
	sessions := api.NewSessionManager(cat.Items(), stores, cfg.AdvanceDelay, cfg.TickEvery)

	// --- Auth ---
	authSvc := authmw.NewAuthService(cfg.AuthHMACSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.EnableLocalAuth {
		r.Post("/auth/login", authmw.LoginHandler(authSvc, dbh))
		r.Post("/auth/register", authmw.RegisterHandler(authSvc, dbh))
	}
	r.Post("/auth/guest", auth.GuestLoginHandler(authSvc, cfg))

	// Public catalog surface.
	r.Get("/catalog", api.GetCatalogHandler(cat))
	r.Get("/catalog/search", api.SearchCatalogHandler(cat))
	r.Post("/classify", api.ClassifyHandler(cat))
	r.Get("/leaderboard", api.LeaderboardHandler(stores.User))

	// Identity-scoped surface (JWT, guest tokens included).
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(authSvc))

		pr.Post("/quiz/start", api.StartQuizHandler(sessions))
		pr.Post("/quiz/answer", api.AnswerQuizHandler(sessions))
		pr.Get("/quiz/state", api.QuizStateHandler(sessions))
		pr.Post("/quiz/stop", api.StopQuizHandler(sessions))

		pr.Get("/me/score", api.MyScoreHandler(stores))
		pr.Get("/me/history", api.MyHistoryHandler(stores))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s, catalog=%s, items=%d)", cfg.HTTPAddr, cfg.DBDriver, cfg.CatalogPath, len(cat.Items()))
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
