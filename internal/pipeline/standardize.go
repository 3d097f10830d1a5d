package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/ride-data-etl/internal/domain"
	"github.com/couchcryptid/ride-data-etl/internal/observability"
)

const jobStandardize = "standardize"

// StandardizeJob flattens complete rides into one record per destination.
type StandardizeJob struct {
	extractor  Extractor
	indexer    domain.CellIndexer
	resolution int
	loaders    []BatchLoader
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewStandardizeJob creates a StandardizeJob. Loaders run in the given order;
// the first failure stops the run.
func NewStandardizeJob(
	e Extractor,
	indexer domain.CellIndexer,
	resolution int,
	loaders []BatchLoader,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *StandardizeJob {
	return &StandardizeJob{
		extractor:  e,
		indexer:    indexer,
		resolution: resolution,
		loaders:    loaders,
		logger:     logger,
		metrics:    metrics,
	}
}

// Run standardizes every ride in source order and hands the flat batch to each loader.
func (j *StandardizeJob) Run(ctx context.Context) ([]domain.StandardRecord, error) {
	start := time.Now()

	raws, err := j.extractor.Extract(ctx)
	if err != nil {
		return nil, fmt.Errorf("extract complete rides: %w", err)
	}
	j.metrics.RecordsRead.WithLabelValues(jobStandardize).Add(float64(len(raws)))

	records := make([]domain.StandardRecord, 0, len(raws))
	skipped := 0
	for i, raw := range raws {
		out, err := domain.StandardizeRide(raw, j.indexer, j.resolution)
		if err != nil {
			return nil, fmt.Errorf("standardize ride %d: %w", i, err)
		}
		if len(out) == 0 {
			skipped++
			j.logger.Debug("ride skipped", "index", i)
			continue
		}
		records = append(records, out...)
	}

	full := 0
	for i := range records {
		if !records[i].IsContinuation() {
			full++
		}
	}
	j.metrics.RidesSkipped.Add(float64(skipped))
	j.metrics.RecordsStandardized.WithLabelValues("full").Add(float64(full))
	j.metrics.RecordsStandardized.WithLabelValues("continuation").Add(float64(len(records) - full))

	for _, l := range j.loaders {
		if err := l.LoadBatch(ctx, records); err != nil {
			return nil, fmt.Errorf("load %s: %w", l.Name(), err)
		}
		j.metrics.RecordsLoaded.WithLabelValues(l.Name()).Add(float64(len(records)))
	}

	j.metrics.JobDuration.WithLabelValues(jobStandardize).Observe(time.Since(start).Seconds())
	j.metrics.JobLastSuccess.WithLabelValues(jobStandardize).SetToCurrentTime()
	j.logger.Info("standardize complete",
		"rides", len(raws),
		"skipped", skipped,
		"records", len(records),
		"full", full,
		"continuation", len(records)-full,
	)
	return records, nil
}
