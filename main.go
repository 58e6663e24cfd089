package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	appLogger "github.com/encontros-app/date-spots-api/app/logger"
	"github.com/encontros-app/date-spots-api/app/observability/metrics"
	"github.com/encontros-app/date-spots-api/app/tracer"
	"github.com/encontros-app/date-spots-api/config"
	"github.com/encontros-app/date-spots-api/internal/api/completion"
	"github.com/encontros-app/date-spots-api/internal/api/recommendations"
	"github.com/encontros-app/date-spots-api/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails.
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tracer.InitTracingAndMetrics("date-spots-api", cfg.Metrics.Port)
	metrics.InitAppMetrics()

	completionCfg := completion.Config{
		Temperature: cfg.Completion.Temperature,
		MaxTokens:   cfg.Completion.MaxTokens,
		Timeout:     cfg.Completion.Timeout,
	}

	// The credential check happens here, before any request is served.
	// Each provider only ever sees its own model/baseURL settings.
	var completionClient completion.Client
	switch cfg.Completion.Provider {
	case "gemini":
		completionCfg.Model = cfg.Completion.Gemini.Model
		completionClient, err = completion.NewGeminiClient(ctx, completionCfg)
	default:
		completionCfg.Model = cfg.Completion.Perplexity.Model
		completionCfg.BaseURL = cfg.Completion.Perplexity.BaseURL
		completionClient, err = completion.NewPerplexityClient(completionCfg)
	}
	if err != nil {
		logger.Error("Failed to create completion client", slog.Any("error", err))
		os.Exit(1)
	}

	recommendationsService := recommendations.NewServiceImpl(
		completionClient,
		recommendations.ParsePromptMode(cfg.Prompt.Mode),
		logger,
	)
	recommendationsHandler := recommendations.NewHandler(recommendationsService, logger)

	mainRouter := router.SetupRouter(&router.Config{
		RecommendationsHandler: recommendationsHandler,
	})

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(appLogger.StructuredLogger(logger))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.Timeout(cfg.Server.Timeout))
	mux.Use(middleware.Compress(5, "application/json"))
	mux.Mount("/", mainRouter)

	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger() *slog.Logger {
	var logger *slog.Logger
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" {
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
	}
	return logger
}
