// Package transport issues single-attempt HTTP requests against the
// remote score store. There are no retries and no backoff anywhere in
// this package; a failed round trip surfaces as an error exactly once.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"scoresync/pkg/logger"
	"scoresync/pkg/metrics"

	"go.uber.org/zap"
)

// Response is the outcome of one round trip
type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// OK reports whether the status code is in [200, 300)
func (r *Response) OK() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Config holds transport settings
type Config struct {
	Timeout     time.Duration
	LogRequests bool
}

// Client wraps an http.Client with the store's request conventions
type Client struct {
	http        *http.Client
	logger      *logger.Logger
	logRequests bool
}

// New creates a Client with the given per-request timeout
func New(cfg Config, l *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:        &http.Client{Timeout: timeout},
		logger:      l,
		logRequests: cfg.LogRequests,
	}
}

// Do issues one request. A non-nil body is sent as JSON. The returned
// error covers transport-level failure only; callers inspect the status
// code for application-level outcomes.
func (c *Client) Do(ctx context.Context, method, url string, body []byte) (*Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.logRequests {
		c.logger.Debug("issuing request", zap.String("method", method), zap.String("url", url))
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.StoreRequestsTotal.Inc()
	if err != nil {
		metrics.StoreRequestErrorsTotal.Inc()
		if c.logRequests {
			c.logger.Warn("request failed",
				zap.String("method", method), zap.String("url", url), zap.Error(err))
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.StoreRequestErrorsTotal.Inc()
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	metrics.StoreRequestLatency.Observe(time.Since(start).Seconds())

	if c.logRequests {
		c.logger.Debug("request completed",
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status", resp.StatusCode))
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       data,
		Header:     resp.Header,
	}, nil
}
