package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/ritikapurwa08/free-knowledge/internals/cache"
	"github.com/ritikapurwa08/free-knowledge/internals/config"
	"github.com/ritikapurwa08/free-knowledge/internals/database"
	"github.com/ritikapurwa08/free-knowledge/internals/http/handlers"
	"github.com/ritikapurwa08/free-knowledge/internals/middlewares"
)

type authMode int

const (
	authNone authMode = iota
	authOptional // identity attached when present; anonymous allowed through
	authRequired
)

// Route describes one API endpoint.
type Route struct {
	Path    string
	Method  string
	Handler http.HandlerFunc
	Auth    authMode
}

func getRoutes(db *sql.DB, cfg *config.Config, lb *cache.Leaderboard, firebaseAuth *auth.Client) []Route {
	return []Route{
		{"/", "GET", healthHandler("Welcome to free-knowledge from '/'"), authNone},
		{"/health", "GET", healthHandler("Welcome to free-knowledge from '/health'"), authNone},

		{"/api/users/new", "POST", handlers.New(db), authNone},
		{"/api/users/login", "POST", handlers.Login(db), authNone},
		{"/api/users/auth/google", "POST", handlers.HandleFirebaseAuth(db, firebaseAuth), authNone},
		{"/api/users/update-profile", "PUT", handlers.UpdateProfile(db, cfg.DefaultAdminEmails), authRequired},
		{"/api/users/update-profile-pic", "PUT", handlers.UpdateProfilePic(db), authRequired},
		{"/api/auth/me", "GET", handlers.Me(db), authRequired},

		{"/api/quiz/new", "POST", handlers.CreateQuiz(db), authOptional},
		{"/api/quiz/quizzes", "GET", handlers.GetQuizzes(db), authNone},
		{"/api/quiz/quizzes", "DELETE", handlers.DeleteQuiz(db), authRequired},
		{"/api/quiz/results", "POST", handlers.SubmitResult(db, cfg, lb), authRequired},
		{"/api/quiz/results", "GET", handlers.GetResult(db), authOptional},
		{"/api/quiz/history", "GET", handlers.GetHistory(db), authOptional},

		{"/api/vocab/mark", "POST", handlers.MarkWord(db, cfg, lb), authRequired},
		{"/api/vocab/known", "GET", handlers.GetKnownWords(db), authOptional},
		{"/api/vocab/words", "GET", handlers.GetWords(db), authNone},
		{"/api/vocab/seed", "POST", handlers.SeedWords(db), authRequired},

		{"/api/stats/leaderboard", "GET", handlers.Leaderboard(db, cfg, lb), authNone},
		{"/api/stats/progress", "GET", handlers.Progress(db, cfg), authOptional},

		{"/api/admin/emails", "POST", handlers.AddAdminEmail(db), authRequired},
		{"/api/admin/emails", "GET", handlers.GetAdminEmails(db, cfg.DefaultAdminEmails), authRequired},
		{"/api/admin/quiz/generate", "POST", handlers.GenerateQuizDraft(db), authRequired},
	}
}

func healthHandler(message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"message": message,
		})
	}
}

func registerRoutes(router *mux.Router, db *sql.DB, cfg *config.Config, lb *cache.Leaderboard, firebaseAuth *auth.Client) {
	for _, route := range getRoutes(db, cfg, lb, firebaseAuth) {
		handler := route.Handler
		switch route.Auth {
		case authRequired:
			handler = middlewares.AuthMiddleware(handler)
		case authOptional:
			handler = middlewares.OptionalAuthMiddleware(handler)
		}
		router.HandleFunc(route.Path, handler).Methods(route.Method, "OPTIONS")

		log.Printf("Registered route: %s [%s]", route.Path, route.Method)
	}
}

func main() {
	cfg := config.MustLoad()

	db := database.ConnectToDatabase(cfg.Dsn)
	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("Schema setup failed: %v", err)
	}

	lb := cache.NewLeaderboard(cfg.RedisAddr)

	firebaseAuth := handlers.InitializeFirebaseApp()

	origins := []string{"https://free-knowledge.vercel.app", "http://localhost:5173"}
	if localOrigin := os.Getenv("CORS_LOCAL_ORIGIN"); localOrigin != "" {
		origins = append(origins, localOrigin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	router := mux.NewRouter()
	registerRoutes(router, db, cfg, lb, firebaseAuth)

	handler := c.Handler(router)
	handler = middlewares.CoopMiddleware(handler)

	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting at", slog.String("PORT", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-done
	slog.Info("Shutting down the server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Failed to shut down server", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down successfully")
	}
}
