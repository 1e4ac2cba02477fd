package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/weighttrack/weighttrack-go/internal/config"
	"github.com/weighttrack/weighttrack-go/internal/crypto"
	"github.com/weighttrack/weighttrack-go/internal/handler"
	"github.com/weighttrack/weighttrack-go/internal/middleware"
	"github.com/weighttrack/weighttrack-go/internal/repository"
	"github.com/weighttrack/weighttrack-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	tokens := crypto.NewTokenService(cfg.JWTAccessSecret, cfg.JWTRefreshSecret)

	userRepo := repository.NewUserRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	weightRepo := repository.NewWeightRepository(db)

	authService := service.NewAuthService(userRepo, tokens)
	goalService := service.NewGoalService(goalRepo, weightRepo)
	weightService := service.NewWeightService(weightRepo, goalRepo)

	authHandler := handler.NewAuthHandler(authService, cfg.IsProduction())
	goalHandler := handler.NewGoalHandler(goalService)
	weightHandler := handler.NewWeightHandler(weightService)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/v1/auth/signup", authHandler.HandleSignup)
		r.Post("/api/v1/auth/login", authHandler.HandleLogin)
		r.Post("/api/v1/auth/refresh", authHandler.HandleRefresh)
	})

	r.Post("/api/v1/auth/logout", authHandler.HandleLogout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionAuth(tokens, userRepo))
		r.Get("/api/v1/auth/me", authHandler.HandleMe)

		r.Get("/api/v1/weights", weightHandler.HandleList)
		r.Post("/api/v1/weights", weightHandler.HandleCreate)
		r.Get("/api/v1/weights/stats", weightHandler.HandleStats)
		r.Get("/api/v1/weights/summary", weightHandler.HandleMonthlySummary)
		r.Put("/api/v1/weights/{entry_id}", weightHandler.HandleUpdate)
		r.Delete("/api/v1/weights/{entry_id}", weightHandler.HandleDelete)

		r.Get("/api/v1/goals", goalHandler.HandleHistory)
		r.Post("/api/v1/goals", goalHandler.HandleCreate)
		r.Get("/api/v1/goals/active", goalHandler.HandleActive)
		r.Get("/api/v1/goals/active/progress", goalHandler.HandleProgress)
		r.Put("/api/v1/goals/{goal_id}", goalHandler.HandleUpdate)
		r.Delete("/api/v1/goals/{goal_id}", goalHandler.HandleDelete)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
