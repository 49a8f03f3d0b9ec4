package api

import (
	"context"
	"time"

	"github.com/damon-houk/ecb-exchange-rates/internal/domain/entity"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/logger"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/metrics"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/sdmx"
)

// probeCurrency is requested when checking whether a date has been published
const probeCurrency = "USD"

// ECBClient queries the ECB EXR dataflow and decodes its SDMX-JSON responses
type ECBClient struct {
	baseURL string
	fetcher Fetcher
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewECBClient creates a client. An empty baseURL uses DefaultBaseURL.
func NewECBClient(baseURL string, fetcher Fetcher, log logger.Logger, m *metrics.Metrics) *ECBClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &ECBClient{
		baseURL: baseURL,
		fetcher: fetcher,
		logger:  logger.OrDefault(log),
		metrics: m,
	}
}

// FetchRates returns the rates-to-EUR of currencies published for date
func (c *ECBClient) FetchRates(ctx context.Context, date time.Time, currencies []string) (map[string]float64, error) {
	body, err := c.fetcher.Get(ctx, RatesURL(c.baseURL, date, currencies))
	if err != nil {
		return nil, err
	}
	return sdmx.DecodeRates(body)
}

// FetchTimeSeries returns the rates-to-EUR of currencies for every date
// published between start and end
func (c *ECBClient) FetchTimeSeries(ctx context.Context, start, end time.Time, currencies []string) (*entity.TimeSeries, error) {
	body, err := c.fetcher.Get(ctx, TimeSeriesURL(c.baseURL, start, end, currencies))
	if err != nil {
		return nil, err
	}
	return sdmx.DecodeTimeSeries(body, currencies)
}

// HasData reports whether the USD rate was published for date. Any failure
// counts as no data.
func (c *ECBClient) HasData(ctx context.Context, date time.Time) bool {
	rates, err := c.FetchRates(ctx, date, []string{probeCurrency})
	if err != nil {
		c.logger.Debug("Probe failed, treating date as unpublished", map[string]interface{}{
			"date":  date.Format(entity.DateLayout),
			"error": err.Error(),
		})
	}

	hit := err == nil && len(rates) > 0
	c.metrics.ObserveProbe(hit)
	return hit
}
