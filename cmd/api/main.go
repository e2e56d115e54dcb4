package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"docverify/internal/config"
	"docverify/internal/logging"
	appotel "docverify/internal/otel"
	"docverify/internal/secrets"
)

// @title Document Verification API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.TimeLocation())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := appotel.Init(ctx, cfg.ServiceName, cfg.ServiceVersion, logger)
	if err != nil {
		logger.Error("tracing_init_failed", "error", err.Error())
		os.Exit(1)
	}

	// The API key is resolved once here and handed to the HTTP layer.
	provider, err := secrets.New(cfg.Secrets)
	if err != nil {
		logger.Error("secrets_provider_invalid", "error", err.Error())
		os.Exit(1)
	}
	apiKey, err := provider.APIKey(ctx)
	if err != nil {
		// Keep serving health and metrics; /verify answers 500 until a key is configured.
		logger.Error("api_key_unavailable", "provider", cfg.Secrets.Provider, "error", err.Error())
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app, err := newApp(cfg, apiKey, reg, logger)
	if err != nil {
		logger.Error("app_init_failed", "error", err.Error())
		os.Exit(1)
	}

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeoutSec) * time.Second
	go func() {
		<-ctx.Done()
		logger.Info("server_shutdown", "timeout_sec", cfg.Server.ShutdownTimeoutSec)
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logger.Error("server_shutdown_failed", "error", err.Error())
		}
	}()

	addr := ":" + cfg.Port
	logger.Info("server_starting", "addr", addr, "service", cfg.ServiceName, "version", cfg.ServiceVersion)

	if err := app.Listen(addr); err != nil {
		logger.Error("server_listen_failed", "error", err.Error())
		os.Exit(1)
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		logger.Error("tracing_shutdown_failed", "error", err.Error())
	}
}
