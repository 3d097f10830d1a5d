package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/ride-data-etl/internal/config"
	"github.com/couchcryptid/ride-data-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

const (
	kindFull         = "full"
	kindContinuation = "continuation"
)

// messageWriter is the subset of *kafkago.Writer used here.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer produces standardized records to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer messageWriter
	runID  string
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, runID string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, runID: runID, logger: logger}
}

func (w *Writer) Name() string { return "kafka" }

// LoadBatch serializes and publishes all records in a single WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, records []domain.StandardRecord) error {
	if len(records) == 0 {
		return nil
	}
	processedAt := domain.Now()
	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msg, err := serializeToMessage(records[i], w.runID, processedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d records to kafka: %w", len(msgs), err)
	}
	w.logger.Debug("published standardized records", "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a StandardRecord into a Kafka message. Full
// records are keyed by route number; continuations carry no key.
func serializeToMessage(record domain.StandardRecord, runID string, processedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize standardized record: %w", err)
	}

	kind := kindFull
	var key []byte
	if record.IsContinuation() {
		kind = kindContinuation
	} else if record.RouteNumber != nil {
		key = []byte(*record.RouteNumber)
	}

	return kafkago.Message{
		Key:   key,
		Value: data,
		Headers: []kafkago.Header{
			{Key: "kind", Value: []byte(kind)},
			{Key: "run_id", Value: []byte(runID)},
			{Key: "processed_at", Value: []byte(processedAt.Format(time.RFC3339))},
		},
	}, nil
}
