// internal/infrastructure/db/ecb_rate_repository_test.go
package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/damon-houk/ecb-exchange-rates/internal/domain/entity"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/logger"
	"github.com/damon-houk/ecb-exchange-rates/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestECBRateRepositoryRateToEUR(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNopLogger()
	requested := time.Date(2024, 12, 28, 0, 0, 0, 0, time.UTC)
	effective := time.Date(2024, 12, 27, 0, 0, 0, 0, time.UTC)

	t.Run("base currency needs no lookup", func(t *testing.T) {
		provider := new(mocks.MockRateProvider)
		resolver := new(mocks.MockDateResolver)
		repo := NewECBRateRepository(provider, resolver, log)

		rate, err := repo.RateToEUR(ctx, "EUR", requested, nil)

		assert.NoError(t, err)
		assert.Equal(t, 1.0, rate)
		provider.AssertNotCalled(t, "FetchRates", mock.Anything, mock.Anything, mock.Anything)
		resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fetches the resolved date", func(t *testing.T) {
		provider := new(mocks.MockRateProvider)
		resolver := new(mocks.MockDateResolver)
		after := time.Date(2024, 12, 28, 9, 0, 0, 0, time.UTC)

		// Mock expectations
		resolver.On("Resolve", ctx, requested, &after).Return(effective).Once()
		provider.On("FetchRates", ctx, effective, []string{"USD"}).
			Return(map[string]float64{"USD": 1.0444}, nil).Once()

		// Execute
		repo := NewECBRateRepository(provider, resolver, log)
		rate, err := repo.RateToEUR(ctx, "USD", requested, &after)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 1.0444, rate)
		provider.AssertExpectations(t)
		resolver.AssertExpectations(t)
	})

	t.Run("missing currency", func(t *testing.T) {
		provider := new(mocks.MockRateProvider)
		resolver := new(mocks.MockDateResolver)
		resolver.On("Resolve", ctx, requested, (*time.Time)(nil)).Return(effective)
		provider.On("FetchRates", ctx, effective, []string{"XAU"}).Return(map[string]float64{}, nil)

		repo := NewECBRateRepository(provider, resolver, log)
		_, err := repo.RateToEUR(ctx, "XAU", requested, nil)

		assert.ErrorIs(t, err, entity.ErrRateNotFound)
		assert.Contains(t, err.Error(), "XAU for date 2024-12-27")
	})

	t.Run("provider errors are returned unchanged", func(t *testing.T) {
		provider := new(mocks.MockRateProvider)
		resolver := new(mocks.MockDateResolver)
		upstream := errors.New("connection reset")
		resolver.On("Resolve", ctx, requested, (*time.Time)(nil)).Return(effective)
		provider.On("FetchRates", ctx, effective, []string{"USD"}).Return(nil, upstream)

		warn := new(mocks.MockLogger)
		warn.On("Warn", "Failed to fetch exchange rate", map[string]interface{}{
			"currency":       "USD",
			"effective_date": "2024-12-27",
			"error":          "connection reset",
		}).Once()

		repo := NewECBRateRepository(provider, resolver, warn)
		_, err := repo.RateToEUR(ctx, "USD", requested, nil)

		assert.Same(t, upstream, err)
		warn.AssertExpectations(t)
	})
}

func TestECBRateRepositoryTimeSeries(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 12, 23, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 27, 0, 0, 0, 0, time.UTC)

	ts := entity.NewTimeSeries()
	ts.Set("2024-12-23", "USD", 1.0405)

	provider := new(mocks.MockRateProvider)
	provider.On("FetchTimeSeries", ctx, start, end, []string{"USD"}).Return(ts, nil).Once()

	repo := NewECBRateRepository(provider, new(mocks.MockDateResolver), logger.NewNopLogger())
	got, err := repo.TimeSeries(ctx, start, end, []string{"USD"})

	require.NoError(t, err)
	assert.Same(t, ts, got)
	provider.AssertExpectations(t)
}

func TestECBRateRepositorySupportedCurrencies(t *testing.T) {
	ctx := context.Background()
	sunday := time.Date(2024, 12, 29, 10, 0, 0, 0, time.UTC)
	isFriday := mock.MatchedBy(func(d time.Time) bool { return d.Format("2006-01-02") == "2024-12-27" })

	t.Run("decoded currencies plus EUR, sorted", func(t *testing.T) {
		provider := new(mocks.MockRateProvider)
		provider.On("FetchRates", ctx, isFriday, entity.DefaultCurrencies()).
			Return(map[string]float64{"USD": 1.04, "JPY": 164.5, "GBP": 0.83}, nil).Once()

		repo := NewECBRateRepository(provider, new(mocks.MockDateResolver), logger.NewNopLogger())
		repo.now = func() time.Time { return sunday }

		assert.Equal(t, []string{"EUR", "GBP", "JPY", "USD"}, repo.SupportedCurrencies(ctx))
		provider.AssertExpectations(t)
	})

	t.Run("failure falls back to the default list", func(t *testing.T) {
		provider := new(mocks.MockRateProvider)
		provider.On("FetchRates", ctx, isFriday, entity.DefaultCurrencies()).Return(nil, entity.ErrUpstream).Once()

		log := new(mocks.MockLogger)
		log.On("Warn", "Falling back to default currency list", map[string]interface{}{
			"date":  "2024-12-27",
			"error": entity.ErrUpstream.Error(),
		}).Once()

		repo := NewECBRateRepository(provider, new(mocks.MockDateResolver), log)
		repo.now = func() time.Time { return sunday }

		assert.Equal(t,
			[]string{"USD", "GBP", "JPY", "CHF", "CAD", "AUD", "NZD", "SEK", "NOK", "DKK", "EUR"},
			repo.SupportedCurrencies(ctx))
		log.AssertExpectations(t)
	})
}

func TestECBRateRepositoryLastUpdateTime(t *testing.T) {
	repo := NewECBRateRepository(new(mocks.MockRateProvider), new(mocks.MockDateResolver), nil)

	got := repo.LastUpdateTime(time.Date(2024, 12, 28, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, "2024-12-27T16:00:00+01:00", got.Format(time.RFC3339))
}
