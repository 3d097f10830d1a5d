// Package jsonfile reads ride documents from disk and writes job output as
// 4-space indented JSON.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/couchcryptid/ride-data-etl/internal/domain"
)

const indent = "    "

// ArrayReader extracts the elements of a document whose root is an array.
// It implements pipeline.Extractor.
type ArrayReader struct {
	Path string
}

func (r ArrayReader) Extract(ctx context.Context) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.Path, err)
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("decode %s: root must be a JSON array: %w", r.Path, err)
	}
	// A null root decodes without error into a nil slice.
	if elems == nil {
		return nil, fmt.Errorf("decode %s: root must be a JSON array, got null", r.Path)
	}
	return elems, nil
}

// CompleteReader extracts the non_null_objects list written by PartitionWriter.
// It implements pipeline.Extractor.
type CompleteReader struct {
	Path string
}

func (r CompleteReader) Extract(ctx context.Context) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.Path, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: root must be a JSON object: %w", r.Path, err)
	}
	list, ok := doc["non_null_objects"]
	if !ok {
		return nil, fmt.Errorf("decode %s: missing non_null_objects", r.Path)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(list, &elems); err != nil || elems == nil {
		return nil, fmt.Errorf("decode %s: non_null_objects must be an array", r.Path)
	}
	return elems, nil
}

// PartitionWriter writes the complete and incomplete buckets to separate files.
// It implements pipeline.PartitionLoader.
type PartitionWriter struct {
	CompletePath   string
	IncompletePath string
}

func (w PartitionWriter) LoadPartition(ctx context.Context, p domain.Partition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := WriteIndented(w.CompletePath, domain.CompleteDocument{NonNullObjects: p.Complete}); err != nil {
		return err
	}
	return WriteIndented(w.IncompletePath, domain.IncompleteDocument{NullObjects: p.Incomplete})
}

// RecordWriter writes standardized records as a bare JSON array.
// It implements pipeline.BatchLoader.
type RecordWriter struct {
	Path string
}

func (RecordWriter) Name() string { return "json" }

func (w RecordWriter) LoadBatch(ctx context.Context, records []domain.StandardRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = []domain.StandardRecord{}
	}
	return WriteIndented(w.Path, records)
}

// WriteIndented encodes v to path with 4-space indentation. HTML characters
// and non-ASCII text are written as-is.
func WriteIndented(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", indent)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
