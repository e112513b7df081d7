package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/lapeco-hr/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/lapeco-hr/internal/adapter/queue"
	"github.com/seu-repo/lapeco-hr/internal/bootstrap"
	"github.com/seu-repo/lapeco-hr/internal/observability/telemetry"
	"github.com/seu-repo/lapeco-hr/internal/service/health"
	"github.com/seu-repo/lapeco-hr/pkg/config"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	// 2. Initialize Logger
	logger, err := telemetry.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer logger.Sync()

	logger.Info("Starting Lapeco HR report engine",
		zap.String("service", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	// 3. Initialize OpenTelemetry (Distributed Tracing)
	tracerCfg := telemetry.TracerConfig{
		ServiceName:    cfg.OpenTelemetry.ServiceName,
		ServiceVersion: cfg.App.Version,
		SampleRatio:    cfg.OpenTelemetry.Jaeger.SamplerParam,
	}
	if cfg.OpenTelemetry.Enabled {
		tracerCfg.Endpoint = cfg.OpenTelemetry.Jaeger.Endpoint
	}
	shutdownTracer, err := telemetry.InitTracer(tracerCfg)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// 4. Storage, cache, queue and services
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	container, err := bootstrap.New(startCtx, cfg, bootstrap.Options{}, logger)
	cancelStart()
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer container.Close()

	sqlDB, err := container.DB.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying SQL DB", zap.Error(err))
	}

	// 5. Health checks
	healthService := health.NewService(&health.Config{
		Version:     cfg.App.Version,
		DB:          sqlDB,
		Cache:       container.Cache,
		Queue:       container.Queue,
		Attachments: container.Attachments,
	}, logger)

	// 6. HTTP server
	app := newHTTPApp(cfg, handlers.Handlers{
		Reports:     handlers.NewReportHandler(container.Reports, logger),
		Evaluation:  handlers.NewEvaluationHandler(container.Evaluation, logger),
		Performance: handlers.NewPerformanceHandler(container.Performance, logger),
	}, healthService, logger)

	// 7. Background workers
	if container.Queue != nil {
		startBackgroundWorkers(container.Queue, logger)
	}

	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 8. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// startBackgroundWorkers keeps an audit trail of engine events in the log.
func startBackgroundWorkers(mq queue.MessageQueue, logger *zap.Logger) {
	logger.Info("Starting background workers")

	subjects := []string{queue.SubjectReportGenerated, queue.SubjectEvaluationPeriodChange}
	for _, subject := range subjects {
		subject := subject
		err := mq.Subscribe(subject, func(msg []byte) error {
			logger.Info("Audit event", zap.String("subject", subject), zap.ByteString("event", msg))
			return nil
		})
		if err != nil {
			logger.Warn("Failed to subscribe", zap.String("subject", subject), zap.Error(err))
		}
	}
}
