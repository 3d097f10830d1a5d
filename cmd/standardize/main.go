// Command standardize reads the complete rides written by partition, assigns
// H3 cells to pickup and destination points, and writes one flat record per
// destination.
//
// Usage:
//
//	go run ./cmd/standardize \
//	  -in YesBana.json \
//	  -out standardized_output.json \
//	  -csv-out standardized_output.csv
//
// Flags override the matching environment variables. Records are also
// published to Kafka when KAFKA_BROKERS is set.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/ride-data-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/ride-data-etl/internal/adapter/h3"
	"github.com/couchcryptid/ride-data-etl/internal/adapter/jsonfile"
	kafkaadapter "github.com/couchcryptid/ride-data-etl/internal/adapter/kafka"
	"github.com/couchcryptid/ride-data-etl/internal/config"
	"github.com/couchcryptid/ride-data-etl/internal/observability"
	"github.com/couchcryptid/ride-data-etl/internal/pipeline"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const jobName = "standardize"

func main() {
	if err := run(); err != nil {
		slog.Error("standardize failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadEnvFile(".env"); err != nil {
		return err
	}

	flag.String("in", "", "input document with a non_null_objects list (overrides STANDARDIZE_INPUT)")
	flag.String("out", "", "output path for the standardized JSON array (overrides STANDARDIZE_OUTPUT)")
	flag.String("csv-out", "", "optional output path for a CSV export (overrides STANDARDIZE_CSV_OUTPUT)")
	flag.String("resolution", "", "H3 resolution 0-15 for pickup and destination cells (overrides H3_RESOLUTION)")
	flag.Parse()
	if err := config.ApplyFlags(flag.CommandLine, map[string]string{
		"in":         "STANDARDIZE_INPUT",
		"out":        "STANDARDIZE_OUTPUT",
		"csv-out":    "STANDARDIZE_CSV_OUTPUT",
		"resolution": "H3_RESOLUTION",
	}); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	runID := uuid.NewString()
	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat).With("job", jobName, "run_id", runID)
	slog.SetDefault(logger)
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loaders := []pipeline.BatchLoader{jsonfile.RecordWriter{Path: cfg.StandardizeOutput}}
	if cfg.StandardizeCSVOutput != "" {
		loaders = append(loaders, csvfile.Writer{Path: cfg.StandardizeCSVOutput})
	}
	if cfg.KafkaEnabled {
		writer := kafkaadapter.NewWriter(cfg, runID, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		loaders = append(loaders, writer)
		logger.Info("kafka sink enabled", "topic", cfg.KafkaSinkTopic, "brokers", cfg.KafkaBrokers)
	}

	indexer := h3.NewCachedIndexer(h3.NewIndexer(), cfg.CellCacheSize, metrics)
	job := pipeline.NewStandardizeJob(
		jsonfile.CompleteReader{Path: cfg.StandardizeInput},
		indexer,
		cfg.CellResolution,
		loaders,
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
	return nil
}
