package main

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"

	"docverify/docs"
	"docverify/internal/config"
	handlers "docverify/internal/http/handler"
	"docverify/internal/http/middleware"
	"docverify/internal/metrics"
	"docverify/internal/service"
	"docverify/internal/verification"
)

// newApp assembles the Fiber app: global middleware, verification service and routes.
// Collectors are registered on reg, which also backs GET /metrics.
func newApp(cfg *config.AppConfig, apiKey string, reg *prometheus.Registry, logger *slog.Logger) (*fiber.App, error) {
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return nil, err
	}
	verificationMetrics, err := metrics.NewVerificationMetrics(reg, verification.AllowedContentTypes())
	if err != nil {
		return nil, err
	}

	svc := service.NewVerificationService(verification.New(), verificationMetrics, logger)

	app := fiber.New(fiber.Config{
		AppName:               cfg.ServiceName,
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             cfg.Server.BodyLimitBytes,
		ReadTimeout:           time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout:          time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		DisableStartupMessage: true,
	})

	// Register global middleware
	app.Use(cors.New(corsConfig(cfg.Server)))
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics" || c.Path() == "/health"
	})))
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(logger))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, svc, handlers.RouteOptions{
		APIKey:         apiKey,
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Gatherer:       reg,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}
		docs.SwaggerInfo.Version = cfg.ServiceVersion

		return swagger.HandlerDefault(c)
	})

	return app, nil
}

// corsConfig allows credentials only for an explicit origin list; Fiber rejects
// credentials combined with the "*" wildcard.
func corsConfig(c config.ServerConfig) cors.Config {
	origins := strings.TrimSpace(c.CORSAllowOrigins)
	if origins == "" {
		origins = "*"
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,X-API-Key,X-Request-ID",
		ExposeHeaders:    "X-Request-ID,X-Document-ID",
		AllowCredentials: c.CORSAllowCredentials && origins != "*",
	}
}
