package pipeline

import (
	"context"
	"encoding/json"

	"github.com/couchcryptid/ride-data-etl/internal/domain"
)

// Extractor reads every candidate ride record for one run.
type Extractor interface {
	Extract(ctx context.Context) ([]json.RawMessage, error)
}

// PartitionLoader persists the complete and incomplete buckets.
type PartitionLoader interface {
	LoadPartition(ctx context.Context, p domain.Partition) error
}

// BatchLoader writes standardized records to one destination.
type BatchLoader interface {
	Name() string
	LoadBatch(ctx context.Context, records []domain.StandardRecord) error
}

// Putter sends a JSON body to a remote store and returns the response text.
type Putter interface {
	Put(ctx context.Context, body []byte) (string, error)
}
