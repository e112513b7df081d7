package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/seu-repo/lapeco-hr/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/lapeco-hr/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/lapeco-hr/internal/infrastructure/circuitbreaker"
	"github.com/seu-repo/lapeco-hr/internal/service/health"
	"github.com/seu-repo/lapeco-hr/pkg/config"
)

func newHTTPApp(cfg *config.Config, h handlers.Handlers, healthService *health.Service, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		ServerHeader:          cfg.App.Name,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		BodyLimit:             cfg.HTTP.BodyLimit,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(logger))
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	}

	// Health and metrics stay outside rate limiting and the circuit
	health.NewFiberHandler(healthService).RegisterRoutes(app)

	if cfg.Prometheus.Enabled {
		metrics := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		app.Get(cfg.Prometheus.Path, func(c *fiber.Ctx) error {
			metrics(c.Context())
			return nil
		})
	}

	if cfg.RateLimiting.Enabled {
		app.Use("/api", middleware.RateLimit(cfg.RateLimiting))
	}
	if cfg.CircuitBreaker.Enabled {
		app.Use("/api", middleware.CircuitBreaker(circuitbreaker.FromConfig("http-api", cfg.CircuitBreaker), logger))
	}

	handlers.RegisterRoutes(app, h)
	return app
}
