package db

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/damon-houk/ecb-exchange-rates/internal/domain/entity"
	"github.com/damon-houk/ecb-exchange-rates/internal/domain/service"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/logger"
)

// RateProvider fetches decoded rates from the publisher
type RateProvider interface {
	FetchRates(ctx context.Context, date time.Time, currencies []string) (map[string]float64, error)
	FetchTimeSeries(ctx context.Context, start, end time.Time, currencies []string) (*entity.TimeSeries, error)
}

// DateResolver picks the date a request is served from
type DateResolver interface {
	Resolve(ctx context.Context, date time.Time, updatedAfter *time.Time) time.Time
}

// ECBRateRepository implements the rate repository interface on top of the
// publisher API. Nothing is kept between calls.
type ECBRateRepository struct {
	provider RateProvider
	resolver DateResolver
	logger   logger.Logger
	now      func() time.Time
}

// NewECBRateRepository creates a new rate repository
func NewECBRateRepository(provider RateProvider, resolver DateResolver, log logger.Logger) *ECBRateRepository {
	return &ECBRateRepository{
		provider: provider,
		resolver: resolver,
		logger:   logger.OrDefault(log),
		now:      time.Now,
	}
}

// RateToEUR returns the rate of currency for the effective date. EUR is 1 without
// a remote call. Provider errors are returned as is.
func (r *ECBRateRepository) RateToEUR(ctx context.Context, currency string, date time.Time, updatedAfter *time.Time) (float64, error) {
	if currency == entity.BaseCurrency {
		return 1.0, nil
	}

	effective := r.resolver.Resolve(ctx, date, updatedAfter)

	rates, err := r.provider.FetchRates(ctx, effective, []string{currency})
	if err != nil {
		r.logger.Warn("Failed to fetch exchange rate", map[string]interface{}{
			"currency":       currency,
			"effective_date": effective.Format(entity.DateLayout),
			"error":          err.Error(),
		})
		return 0, err
	}

	rate, ok := rates[currency]
	if !ok {
		return 0, fmt.Errorf("%w: %s for date %s", entity.ErrRateNotFound, currency, effective.Format(entity.DateLayout))
	}

	r.logger.Debug("Found exchange rate", map[string]interface{}{
		"currency":       currency,
		"requested_date": date.Format(entity.DateLayout),
		"effective_date": effective.Format(entity.DateLayout),
		"rate":           rate,
	})

	return rate, nil
}

// TimeSeries returns the published rates between start and end
func (r *ECBRateRepository) TimeSeries(ctx context.Context, start, end time.Time, currencies []string) (*entity.TimeSeries, error) {
	ts, err := r.provider.FetchTimeSeries(ctx, start, end, currencies)
	if err != nil {
		r.logger.Warn("Failed to fetch time series", map[string]interface{}{
			"start": start.Format(entity.DateLayout),
			"end":   end.Format(entity.DateLayout),
			"error": err.Error(),
		})
		return nil, err
	}
	return ts, nil
}

// SupportedCurrencies lists the default currencies published on the most recent
// working day plus EUR, sorted. Any failure yields the default list plus EUR.
func (r *ECBRateRepository) SupportedCurrencies(ctx context.Context) []string {
	day := service.RecentWorkingDay(r.now())

	rates, err := r.provider.FetchRates(ctx, day, entity.DefaultCurrencies())
	if err != nil {
		r.logger.Warn("Falling back to default currency list", map[string]interface{}{
			"date":  day.Format(entity.DateLayout),
			"error": err.Error(),
		})
		return append(entity.DefaultCurrencies(), entity.BaseCurrency)
	}

	currencies := make([]string, 0, len(rates)+1)
	for code := range rates {
		currencies = append(currencies, code)
	}
	currencies = append(currencies, entity.BaseCurrency)
	sort.Strings(currencies)

	return currencies
}

// LastUpdateTime returns the nominal publication instant for date
func (r *ECBRateRepository) LastUpdateTime(date time.Time) time.Time {
	return service.LastUpdateTime(date)
}
