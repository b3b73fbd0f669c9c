package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/khoahotran/cv-portfolio/adapters/event"
	"github.com/khoahotran/cv-portfolio/adapters/revalidate"
	workerUC "github.com/khoahotran/cv-portfolio/internal/application/usecase/revalidate"
	"github.com/khoahotran/cv-portfolio/internal/config"
	"github.com/khoahotran/cv-portfolio/pkg/logger"
	"github.com/khoahotran/cv-portfolio/pkg/tracing"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting CV Portfolio Worker...")

	shutdownTracing, err := tracing.NewTracerProvider(ctx, cfg, appLogger, "cv-portfolio-worker")
	if err != nil {
		appLogger.Fatal("Cannot init tracing", err)
	}
	defer shutdownTracing(context.Background())

	// Revalidation webhook
	revalidator, err := revalidate.NewWebhookRevalidator(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize revalidator", err)
	}

	// Worker Use Case
	revalidateUC := workerUC.NewRevalidateUseCase(revalidator, appLogger)

	// Kafka Consumer
	consumer := event.NewProfileEventConsumer(cfg, func(ctx context.Context, payload event.ProfileEventPayload) error {
		appLogger.Debug("Processing event", zap.String("event_type", payload.EventType), zap.String("path", payload.Path))
		return revalidateUC.Execute(ctx, workerUC.RevalidateInput{Path: payload.Path})
	}, appLogger)
	defer consumer.Close()

	if err := consumer.Run(ctx); err != nil {
		appLogger.Error("Worker stopped with error", err)
	}
	appLogger.Info("Worker stopped")
}
