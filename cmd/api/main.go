package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/hr-interviewer-api/internal/config"
	"github.com/noah-isme/hr-interviewer-api/internal/handler"
	"github.com/noah-isme/hr-interviewer-api/internal/middleware"
	"github.com/noah-isme/hr-interviewer-api/internal/observability"
	"github.com/noah-isme/hr-interviewer-api/internal/router"
	"github.com/noah-isme/hr-interviewer-api/internal/service"
	"github.com/noah-isme/hr-interviewer-api/pkg/ai"
	"github.com/noah-isme/hr-interviewer-api/pkg/pdftext"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	evaluator, err := ai.New(ai.Config{
		Provider:    cfg.AIProvider,
		Endpoint:    cfg.AIEndpoint,
		Model:       cfg.AIModel,
		APIKey:      cfg.AIAPIKey,
		Temperature: ai.Float32(cfg.AITemperature),
		Timeout:     cfg.AITimeout,
		MaxTokens:   cfg.AIMaxTokens,
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("failed to create ai evaluator: %v", err)
	}

	extractor := pdftext.NewExtractor(logger)
	interviewService := service.NewInterviewService(extractor, evaluator, logger, service.InterviewConfig{
		TempDir: cfg.UploadTempDir,
	})
	interviewHandler := handler.NewInterviewHandler(interviewService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    cfg.UploadMaxBytes(),
		// the model call alone may take up to the AI timeout
		WriteTimeout: cfg.AITimeout + 30*time.Second,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		InterviewHandler: interviewHandler,
		MetricsHandler:   observability.MetricsHandler(),
	})

	logger.Info().
		Str("address", cfg.HTTPAddress()).
		Str("ai_provider", cfg.AIProvider).
		Str("ai_model", cfg.AIModel).
		Msg("starting interviewer api")

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, logger)
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
