// Package ecbrates resolves foreign exchange rates from the European Central
// Bank's daily reference rates.
//
// The ECB quotes every currency against EUR once per working day, around 16:00
// Europe/Brussels. Rates between two other currencies are crossed through EUR.
// Requests for weekends, holidays or for dates whose rates are not yet
// published are served from the closest earlier date that has data.
//
//	client := ecbrates.New(ecbrates.Options{})
//	quote, err := client.Exchange().
//		FromCurrency("USD").
//		ToCurrency("GBP").
//		Date(time.Date(2024, 12, 27, 0, 0, 0, 0, time.UTC)).
//		Get(ctx)
package ecbrates

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/damon-houk/ecb-exchange-rates/internal/application/service"
	"github.com/damon-houk/ecb-exchange-rates/internal/domain/entity"
	domainservice "github.com/damon-houk/ecb-exchange-rates/internal/domain/service"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/api"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/db"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/logger"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type (
	Quote           = entity.Quote
	QuoteCollection = entity.QuoteCollection
	TimeSeries      = entity.TimeSeries
	ExchangeBuilder = service.ExchangeBuilder
	Logger          = logger.Logger
)

const (
	BaseCurrency   = entity.BaseCurrency
	DefaultBaseURL = api.DefaultBaseURL
)

// Errors reported by the client. Test them with errors.Is.
var (
	ErrUpstream          = entity.ErrUpstream
	ErrMalformedResponse = entity.ErrMalformedResponse
	ErrMissingStructure  = entity.ErrMissingStructure
	ErrRateNotFound      = entity.ErrRateNotFound
	ErrZeroRate          = entity.ErrZeroRate
	ErrInvalidCurrency   = entity.ErrInvalidCurrency
	ErrInvalidDateRange  = entity.ErrInvalidDateRange
	ErrMultipleTargets   = service.ErrMultipleTargets
)

// Options configures a Client. The zero value talks to the ECB data portal with
// a 30 second timeout.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string

	// HTTPClient overrides Timeout when set
	HTTPClient *http.Client

	// Logger defaults to the process-wide default logger
	Logger Logger

	// Registerer receives the client's Prometheus collectors when set
	Registerer prometheus.Registerer
}

// Client resolves quotes. It keeps no data between calls and is safe for
// concurrent use.
type Client struct {
	service *service.ExchangeService
}

// New wires a client
func New(opts Options) *Client {
	log := logger.OrDefault(opts.Logger)

	var m *metrics.Metrics
	if opts.Registerer != nil {
		m = metrics.New(opts.Registerer)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil && opts.Timeout > 0 {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	source := api.NewECBClient(opts.BaseURL, api.NewHTTPFetcher(httpClient, opts.UserAgent, log, m), log, m)
	resolver := domainservice.NewDateResolver(source, log)
	rates := db.NewECBRateRepository(source, resolver, log)

	return &Client{service: service.NewExchangeService(rates, log)}
}

// NewJSONLogger returns a logger writing JSON lines to w at the given level
// (debug, info, warn, error or fatal)
func NewJSONLogger(w io.Writer, level string) Logger {
	return logger.NewJSONLogger(w, logger.ParseLevel(level))
}

// Exchange starts a quote request. From and to default to EUR and the date to
// today in the publisher timezone.
func (c *Client) Exchange() *ExchangeBuilder {
	return c.service.Exchange()
}

// Rate returns how many units of to one unit of from is worth on date.
// updatedAfter may be nil.
func (c *Client) Rate(ctx context.Context, from, to string, date time.Time, updatedAfter *time.Time) (float64, error) {
	quote, err := c.service.GetExchangeRate(ctx, from, to, date, updatedAfter)
	if err != nil {
		return 0, err
	}
	return quote.Rate, nil
}

// SupportedCurrencies lists the currencies published on the most recent working
// day plus EUR. It falls back to a fixed list of major currencies when the
// publisher cannot be reached.
func (c *Client) SupportedCurrencies(ctx context.Context) []string {
	return c.service.SupportedCurrencies(ctx)
}

// TimeSeries returns the rates published between start and end inclusive. No
// currencies means the ten default major currencies.
func (c *Client) TimeSeries(ctx context.Context, start, end time.Time, currencies ...string) (*TimeSeries, error) {
	return c.service.TimeSeries(ctx, start, end, currencies)
}

// LastUpdateTime returns the nominal publication instant of the rates for date
func (c *Client) LastUpdateTime(date time.Time) time.Time {
	return c.service.LastUpdateTime(date)
}

// Service exposes the underlying exchange service for embedding in servers
func (c *Client) Service() *service.ExchangeService {
	return c.service
}

// DefaultCurrencies returns the major currencies requested when none are named
func DefaultCurrencies() []string {
	return entity.DefaultCurrencies()
}
