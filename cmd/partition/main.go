// Command partition splits a JSON array of ride records into records with all
// coordinates present and records with null coordinates.
//
// Usage:
//
//	go run ./cmd/partition \
//	  -in YesBana.json \
//	  -complete-out Yesbana.json \
//	  -incomplete-out null-objects.json
//
// Flags override PARTITION_INPUT, PARTITION_COMPLETE_OUTPUT and
// PARTITION_INCOMPLETE_OUTPUT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/ride-data-etl/internal/adapter/jsonfile"
	"github.com/couchcryptid/ride-data-etl/internal/config"
	"github.com/couchcryptid/ride-data-etl/internal/observability"
	"github.com/couchcryptid/ride-data-etl/internal/pipeline"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const jobName = "partition"

func main() {
	if err := run(); err != nil {
		slog.Error("partition failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadEnvFile(".env"); err != nil {
		return err
	}

	flag.String("in", "", "input JSON array of ride records (overrides PARTITION_INPUT)")
	flag.String("complete-out", "", "output path for records with all coordinates (overrides PARTITION_COMPLETE_OUTPUT)")
	flag.String("incomplete-out", "", "output path for records with null coordinates (overrides PARTITION_INCOMPLETE_OUTPUT)")
	flag.Parse()
	if err := config.ApplyFlags(flag.CommandLine, map[string]string{
		"in":             "PARTITION_INPUT",
		"complete-out":   "PARTITION_COMPLETE_OUTPUT",
		"incomplete-out": "PARTITION_INCOMPLETE_OUTPUT",
	}); err != nil {
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

	job := pipeline.NewPartitionJob(
		jsonfile.ArrayReader{Path: cfg.PartitionInput},
		jsonfile.PartitionWriter{CompletePath: cfg.PartitionCompleteOutput, IncompletePath: cfg.PartitionIncompleteOutput},
		logger,
		metrics,
	)
	if _, err := job.Run(ctx); err != nil {
		return err
	}

	if cfg.PushgatewayURL != "" {
		if err := observability.PushMetrics(ctx, cfg.PushgatewayURL, jobName, reg); err != nil {
			logger.Warn("metrics push failed", "error", err)
		}
	}

	fmt.Printf("Processing complete. File saved as '%s'.\n", cfg.PartitionCompleteOutput)
	return nil
}
