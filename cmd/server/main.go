package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/attunehq/attune/api/internal/config"
	"github.com/attunehq/attune/api/internal/database"
	"github.com/attunehq/attune/api/internal/handler"
	"github.com/attunehq/attune/api/internal/middleware"
	"github.com/attunehq/attune/api/internal/repository"
	"github.com/attunehq/attune/api/internal/service"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize repositories
	surveyRepo := repository.NewSurveyRepository(db)

	// Initialize services
	surveyService := service.NewSurveyService(service.SurveyServiceConfig{
		Repo: surveyRepo,
	})
	comparisonService := service.NewComparisonService(service.ComparisonServiceConfig{
		Surveys: surveyService,
	})

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(db)
	surveyHandler := handler.NewSurveyHandler(surveyService)
	comparisonHandler := handler.NewComparisonHandler(comparisonService)

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:    cfg.RateLimit.Rate,
		Window:  cfg.RateLimit.Window,
		Burst:   cfg.RateLimit.Burst,
		Cleanup: cfg.RateLimit.Cleanup,
	})
	defer rateLimiter.Stop()

	// Routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.Health)

	mux.HandleFunc("POST /v1/surveys", surveyHandler.Upload)
	mux.HandleFunc("GET /v1/surveys/{surveyId}", surveyHandler.Get)
	mux.HandleFunc("GET /v1/surveys/shared/{shareCode}", surveyHandler.GetShared)
	mux.HandleFunc("DELETE /v1/surveys/{surveyId}", surveyHandler.Delete)

	mux.HandleFunc("GET /v1/surveys/{surveyId}/compare/{partnerId}", comparisonHandler.CompareStored)
	mux.HandleFunc("POST /v1/compare", comparisonHandler.Compare)

	// Apply middleware
	wrapped := middleware.Chain(
		http.MaxBytesHandler(mux, cfg.Upload.MaxBodyBytes),
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
