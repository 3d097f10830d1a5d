package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// DemoPayload is the fixed body sent to the remote store.
var DemoPayload = []byte(`{"newKey": "newValue"}`)

// Push sends DemoPayload once and prints the response text to out.
func Push(ctx context.Context, p Putter, out io.Writer, logger *slog.Logger) error {
	text, err := p.Put(ctx, DemoPayload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, text); err != nil {
		return fmt.Errorf("print response: %w", err)
	}
	logger.Info("pantry push complete", "response_bytes", len(text))
	return nil
}
