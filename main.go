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

	appLogger "github.com/wanderseoul/daycourse/app/logger"
	"github.com/wanderseoul/daycourse/config"
	"github.com/wanderseoul/daycourse/internal/api/geocoding"
	"github.com/wanderseoul/daycourse/internal/api/llm"
	"github.com/wanderseoul/daycourse/internal/api/places"
	"github.com/wanderseoul/daycourse/internal/api/recommendation"
	"github.com/wanderseoul/daycourse/internal/api/weather"
	api "github.com/wanderseoul/daycourse/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
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

	// Credentials are read once here and injected; collaborators never
	// touch the environment themselves.
	creds := config.Credentials{
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey:     os.Getenv("GOOGLE_GEMINI_API_KEY"),
		VWorldAPIKey:     os.Getenv("VWORLD_API_KEY"),
		KMAServiceKey:    os.Getenv("KMA_SERVICE_KEY"),
		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
	}

	llmClient, err := newLLMClient(ctx, cfg, creds)
	if err != nil {
		logger.Error("Failed to create LLM client", slog.Any("error", err))
		os.Exit(1)
	}

	photoFinder, err := places.NewService(creds.GoogleMapsAPIKey, logger)
	if err != nil {
		logger.Error("Failed to create places service", slog.Any("error", err))
		os.Exit(1)
	}

	geocodingService := geocoding.NewVWorldService(creds.VWorldAPIKey, logger)
	weatherService := weather.NewService(
		weather.NewKMAClient(creds.KMAServiceKey),
		weather.NewOpenMeteoClient(),
		logger,
	)

	recorder := recommendation.NewMemoryInteractionRecorder(cfg.Recommendation.InteractionTTL)
	recommendationService := recommendation.NewService(llmClient, photoFinder, recorder, logger)
	recommendationHandler := recommendation.NewHandler(recommendationService, geocodingService, weatherService, logger)

	routerConfig := &api.Config{
		RecommendationHandler: recommendationHandler,
	}
	mainRouter := api.SetupRouter(routerConfig)

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appLogger.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(cfg.Server.Timeout))
	router.Use(middleware.Compress(5, "application/json"))
	router.Mount("/", mainRouter)

	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second, // Generation holds the request through retries
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

func newLLMClient(ctx context.Context, cfg config.Config, creds config.Credentials) (llm.Client, error) {
	switch cfg.LLM.Provider {
	case "gemini":
		return llm.NewGeminiClient(ctx, creds.GeminiAPIKey, cfg.LLM.Model, cfg.LLM.Temperature)
	case "openai", "":
		return llm.NewOpenAIClient(creds.OpenAIAPIKey, cfg.LLM.Model, cfg.LLM.Temperature)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
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
		log.Println("Initialized development logger (tint)")
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
