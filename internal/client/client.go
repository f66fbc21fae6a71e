// Package client wraps outbound HTTP calls between services. Every call
// propagates the caller's correlation id, records exactly one external-call
// metric sample, and translates transport and status failures into the
// domain error taxonomy. There is no retry: a failed dependency call fails
// the calling operation immediately.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"microshop/internal/domain"
	"microshop/internal/metrics"
	"microshop/internal/trace"
)

type Client struct {
	target         string
	baseURL        string
	notFoundDetail string
	httpClient     *http.Client
	metrics        *metrics.Registry
	logger         *slog.Logger
}

// New builds a client for one dependency service. notFoundDetail is the
// detail string surfaced when the dependency answers 404, so a user lookup
// miss becomes "User not found" at the caller, not a generic upstream error.
// timeout bounds the whole call; an unresponsive dependency is reported as
// unavailable after that bound, never waited on indefinitely.
func New(target, baseURL, notFoundDetail string, timeout time.Duration, m *metrics.Registry, logger *slog.Logger) *Client {
	m.WarmTarget(target)
	return &Client{
		target:         target,
		baseURL:        baseURL,
		notFoundDetail: notFoundDetail,
		httpClient:     &http.Client{Timeout: timeout},
		metrics:        m,
		logger:         logger,
	}
}

func (c *Client) Target() string {
	return c.target
}

// GetJSON issues GET baseURL+path and decodes a 2xx response body into out
// (out may be nil when the body is irrelevant). The metric sample is recorded
// before any error is returned, so a dependency sample always precedes the
// caller's own request sample.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, joinURL(c.baseURL, path), nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", c.target, err)
	}
	if id := trace.FromContext(ctx); id != "" {
		req.Header.Set(trace.Header, id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		c.record(metrics.OutcomeError, elapsed)
		c.logger.Warn("dependency call failed",
			slog.String("target", c.target),
			slog.String("path", path),
			slog.String("trace_id", trace.FromContext(ctx)),
			slog.String("error", err.Error()),
		)
		return domain.ServiceUnavailable(fmt.Sprintf("%s is unavailable", c.target))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.record(metrics.OutcomeError, elapsed)
		c.logger.Warn("dependency returned error status",
			slog.String("target", c.target),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("trace_id", trace.FromContext(ctx)),
		)
		if resp.StatusCode == http.StatusNotFound {
			return domain.NotFound(c.notFoundDetail)
		}
		return domain.Upstream(fmt.Sprintf("%s returned an error", c.target))
	}

	c.record(metrics.OutcomeSuccess, elapsed)

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.Upstream(fmt.Sprintf("%s returned an invalid response", c.target))
	}
	return nil
}

func (c *Client) record(outcome string, elapsed time.Duration) {
	c.metrics.IncExternalCall(c.target, outcome)
	c.metrics.ObserveExternalCall(c.target, elapsed.Seconds())
}

func joinURL(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}
