package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/ride-data-etl/internal/domain"
	"github.com/couchcryptid/ride-data-etl/internal/observability"
)

const jobPartition = "partition"

// PartitionJob splits ride records into complete and incomplete buckets.
type PartitionJob struct {
	extractor Extractor
	loader    PartitionLoader
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewPartitionJob creates a PartitionJob with the given stages and observability.
func NewPartitionJob(e Extractor, l PartitionLoader, logger *slog.Logger, metrics *observability.Metrics) *PartitionJob {
	return &PartitionJob{extractor: e, loader: l, logger: logger, metrics: metrics}
}

// Run reads all records, partitions them, and writes both buckets.
// Malformed elements are counted as dropped; read and write failures are returned.
func (j *PartitionJob) Run(ctx context.Context) (domain.Partition, error) {
	start := time.Now()

	raws, err := j.extractor.Extract(ctx)
	if err != nil {
		return domain.Partition{}, fmt.Errorf("extract ride records: %w", err)
	}
	j.metrics.RecordsRead.WithLabelValues(jobPartition).Add(float64(len(raws)))
	j.logger.Debug("loaded ride records", "count", len(raws))

	p := domain.PartitionRecords(raws)
	j.metrics.RecordsPartitioned.WithLabelValues(domain.Complete.String()).Add(float64(len(p.Complete)))
	j.metrics.RecordsPartitioned.WithLabelValues(domain.Incomplete.String()).Add(float64(len(p.Incomplete)))
	j.metrics.RecordsPartitioned.WithLabelValues(domain.Dropped.String()).Add(float64(p.Dropped))

	if err := j.loader.LoadPartition(ctx, p); err != nil {
		return domain.Partition{}, fmt.Errorf("load partition: %w", err)
	}

	j.metrics.JobDuration.WithLabelValues(jobPartition).Observe(time.Since(start).Seconds())
	j.metrics.JobLastSuccess.WithLabelValues(jobPartition).SetToCurrentTime()
	j.logger.Info("partition complete",
		"read", len(raws),
		"complete", len(p.Complete),
		"incomplete", len(p.Incomplete),
		"dropped", p.Dropped,
	)
	return p, nil
}
