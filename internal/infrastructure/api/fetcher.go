package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/damon-houk/ecb-exchange-rates/internal/domain/entity"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/logger"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/metrics"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "ECB Exchange Go Client/2.0"

	maxBodySize     = 32 << 20
	maxErrorSnippet = 256
)

// Fetcher retrieves a response body by URL
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher implements Fetcher over HTTP. Requests are not retried.
type HTTPFetcher struct {
	httpClient *http.Client
	userAgent  string
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// NewHTTPFetcher creates a fetcher. A nil client gets DefaultTimeout and an
// empty user agent gets DefaultUserAgent.
func NewHTTPFetcher(httpClient *http.Client, userAgent string, log logger.Logger, m *metrics.Metrics) *HTTPFetcher {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: DefaultTimeout,
		}
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &HTTPFetcher{
		httpClient: httpClient,
		userAgent:  userAgent,
		logger:     logger.OrDefault(log),
		metrics:    m,
	}
}

// Get performs a GET request and returns the body of a 2xx response. Transport
// failures, timeouts and other status codes are reported as entity.ErrUpstream.
func (f *HTTPFetcher) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", f.userAgent)

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.metrics.ObserveUpstream(metrics.OutcomeError, time.Since(start))
		// callers decide whether a failure is worth more than DEBUG
		f.logger.Debug("Exchange rate source request failed", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: request failed: %w", entity.ErrUpstream, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			f.logger.Warn("Error closing response body", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		f.metrics.ObserveUpstream(metrics.OutcomeError, time.Since(start))
		return nil, fmt.Errorf("%w: failed to read response body: %w", entity.ErrUpstream, err)
	}

	f.logger.Debug("Exchange rate source responded", map[string]interface{}{
		"url":    url,
		"status": resp.StatusCode,
		"bytes":  len(body),
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.metrics.ObserveUpstream(metrics.OutcomeStatus, time.Since(start))
		return nil, fmt.Errorf("%w: status %d: %s", entity.ErrUpstream, resp.StatusCode, snippet(body))
	}

	f.metrics.ObserveUpstream(metrics.OutcomeSuccess, time.Since(start))
	return body, nil
}

func snippet(body []byte) string {
	if len(body) > maxErrorSnippet {
		return string(body[:maxErrorSnippet]) + "..."
	}
	return string(body)
}
