// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP client and retry policy used to fetch
// raw input tables.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/nuclide-engine/pkg/types"
)

// RetryBaseDelay is the first backoff interval. Tests shorten it.
var RetryBaseDelay = 2 * time.Second

const (
	defaultMaxRetries = 5
	defaultTimeout    = 60 * time.Second
	maxRetryAfter     = 5 * time.Minute
)

// NewClient returns an HTTP client honoring cfg.Timeout.
func NewClient(cfg types.HTTPConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Retrier retries requests answered with 429 or 503. The wait is the
// server's Retry-After when it sends one, otherwise RetryBaseDelay doubled
// per attempt.
type Retrier struct {
	// MaxRetries bounds the retries after the first attempt; 0 means 5.
	MaxRetries int
	Logger     *zap.Logger
}

// Do sends req until it gets a non-retryable status or the retries run out.
// The last retryable response is returned as-is so callers can report it.
func (r Retrier) Do(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
	maxRetries := r.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if !retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		wait := backoff(attempt, resp.Header.Get("Retry-After"))
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		logger.Info("retrying request",
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode),
			zap.Duration("wait", wait),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

// DoWithRetry is Retrier{MaxRetries: maxRetries}.Do.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	return Retrier{MaxRetries: maxRetries}.Do(ctx, client, req)
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// backoff honors a Retry-After given in seconds, capped at maxRetryAfter.
func backoff(attempt int, retryAfter string) time.Duration {
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs >= 0 {
		d := time.Duration(secs) * time.Second
		if d > maxRetryAfter {
			d = maxRetryAfter
		}
		return d
	}
	return RetryBaseDelay << attempt
}
