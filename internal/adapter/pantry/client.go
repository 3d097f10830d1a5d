// Package pantry talks to the getpantry.cloud JSON basket store.
package pantry

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/ride-data-etl/internal/observability"
)

// Client issues basket updates against a single Pantry basket URL.
type Client struct {
	basketURL  string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Pantry client. A zero timeout means no client timeout.
func NewClient(basketURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		basketURL: basketURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Put sends body as the basket contents and returns the raw response text.
// The response status is not inspected.
func (c *Client) Put(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.basketURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.PantryDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.PantryRequests.WithLabelValues("error").Inc()
		return "", fmt.Errorf("pantry put: %w", err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.PantryRequests.WithLabelValues("error").Inc()
		return "", fmt.Errorf("read pantry response: %w", err)
	}

	c.metrics.PantryRequests.WithLabelValues("success").Inc()
	c.logger.Debug("pantry put complete", "status", resp.StatusCode, "bytes", len(text))
	return string(text), nil
}
