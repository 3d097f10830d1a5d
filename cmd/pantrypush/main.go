// Command pantrypush writes a fixed JSON payload to a Pantry basket with one
// PUT request and prints the raw response text.
//
// Set PANTRY_URL to the basket endpoint:
//
//	https://getpantry.cloud/apiv1/pantry/<pantry-id>/basket/<basket-name>
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/ride-data-etl/internal/adapter/pantry"
	"github.com/couchcryptid/ride-data-etl/internal/config"
	"github.com/couchcryptid/ride-data-etl/internal/observability"
	"github.com/couchcryptid/ride-data-etl/internal/pipeline"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const jobName = "pantrypush"

func main() {
	if err := run(); err != nil {
		slog.Error("pantry push failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadEnvFile(".env"); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(cfg).With("job", jobName, "run_id", uuid.NewString())
	slog.SetDefault(logger)
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := pantry.NewClient(cfg.PantryURL, cfg.PantryTimeout, metrics, logger)
	if err := pipeline.Push(ctx, client, os.Stdout, logger); err != nil {
		return err
	}

	if cfg.PushgatewayURL != "" {
		if err := observability.PushMetrics(ctx, cfg.PushgatewayURL, jobName, reg); err != nil {
			logger.Warn("metrics push failed", "error", err)
		}
	}
	return nil
}
