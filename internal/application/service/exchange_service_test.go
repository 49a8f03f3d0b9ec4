package service

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

var (
	testDate = time.Date(2024, 12, 27, 0, 0, 0, 0, time.UTC)
	noAfter  = (*time.Time)(nil)
)

func TestRate(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNopLogger()

	t.Run("Same currency needs no lookup", func(t *testing.T) {
		// Setup
		rates := new(mocks.MockRateRepository)
		svc := NewExchangeService(rates, log)

		for _, c := range []string{"EUR", "USD", "JPY"} {
			// Execute
			rate, err := svc.Rate(ctx, c, c, testDate, nil)

			// Assert
			assert.NoError(t, err)
			assert.Equal(t, 1.0, rate)
		}
		rates.AssertNotCalled(t, "RateToEUR", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("From EUR is the direct rate", func(t *testing.T) {
		// Setup
		rates := new(mocks.MockRateRepository)
		svc := NewExchangeService(rates, log)

		// Mock expectations
		rates.On("RateToEUR", ctx, "USD", testDate, noAfter).Return(1.0444, nil).Once()

		// Execute
		rate, err := svc.Rate(ctx, "EUR", "USD", testDate, nil)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 1.0444, rate)
		rates.AssertExpectations(t)
	})

	t.Run("To EUR is the inverse", func(t *testing.T) {
		rates := new(mocks.MockRateRepository)
		svc := NewExchangeService(rates, log)
		rates.On("RateToEUR", ctx, "USD", testDate, noAfter).Return(1.0444, nil).Once()

		rate, err := svc.Rate(ctx, "USD", "EUR", testDate, nil)

		assert.NoError(t, err)
		assert.InDelta(t, 1/1.0444, rate, 1e-12)
		assert.InDelta(t, 1.0, rate*1.0444, 1e-12)
		rates.AssertNumberOfCalls(t, "RateToEUR", 1)
	})

	t.Run("Inverting a zero rate fails", func(t *testing.T) {
		rates := new(mocks.MockRateRepository)
		svc := NewExchangeService(rates, log)
		rates.On("RateToEUR", ctx, "XXX", testDate, noAfter).Return(0.0, nil).Once()

		_, err := svc.Rate(ctx, "XXX", "EUR", testDate, nil)

		assert.ErrorIs(t, err, entity.ErrZeroRate)
	})

	t.Run("Cross rate through EUR", func(t *testing.T) {
		rates := new(mocks.MockRateRepository)
		svc := NewExchangeService(rates, log)
		after := time.Date(2024, 12, 27, 17, 0, 0, 0, time.UTC)
		rates.On("RateToEUR", ctx, "USD", testDate, &after).Return(1.0444, nil).Once()
		rates.On("RateToEUR", ctx, "GBP", testDate, &after).Return(0.82968, nil).Once()

		rate, err := svc.Rate(ctx, "USD", "GBP", testDate, &after)

		assert.NoError(t, err)
		assert.InDelta(t, 0.82968/1.0444, rate, 1e-12)
		rates.AssertExpectations(t)
	})

	t.Run("Cross rate from a zero rate fails", func(t *testing.T) {
		rates := new(mocks.MockRateRepository)
		svc := NewExchangeService(rates, log)
		rates.On("RateToEUR", ctx, "XXX", testDate, noAfter).Return(0.0, nil).Once()
		rates.On("RateToEUR", ctx, "GBP", testDate, noAfter).Return(0.82968, nil).Once()

		_, err := svc.Rate(ctx, "XXX", "GBP", testDate, nil)

		assert.ErrorIs(t, err, entity.ErrZeroRate)
	})

	t.Run("Lookup errors are returned unchanged", func(t *testing.T) {
		upstream := errors.New("connection refused")

		tests := []struct {
			name     string
			from, to string
		}{
			{"direct", "EUR", "USD"},
			{"inverse", "USD", "EUR"},
			{"cross", "USD", "GBP"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rates := new(mocks.MockRateRepository)
				svc := NewExchangeService(rates, log)
				rates.On("RateToEUR", ctx, "USD", testDate, noAfter).Return(0.0, upstream)

				_, err := svc.Rate(ctx, tt.from, tt.to, testDate, nil)

				assert.Same(t, upstream, err)
				rates.AssertNotCalled(t, "RateToEUR", ctx, "GBP", testDate, noAfter)
			})
		}
	})
}

func TestGetExchangeRate(t *testing.T) {
	ctx := context.Background()

	t.Run("Normalizes codes and builds the quote", func(t *testing.T) {
		rates := new(mocks.MockRateRepository)
		svc := NewExchangeService(rates, logger.NewNopLogger())
		rates.On("RateToEUR", ctx, "JPY", testDate, noAfter).Return(164.51, nil).Once()

		quote, err := svc.GetExchangeRate(ctx, " eur", "jpy ", testDate, nil)

		require.NoError(t, err)
		assert.Equal(t, "EUR", quote.From)
		assert.Equal(t, "JPY", quote.To)
		assert.Equal(t, 164.51, quote.Rate)
		assert.Equal(t, testDate, quote.Date)
		assert.Nil(t, quote.UpdatedAfter)
	})

	t.Run("Invalid currency", func(t *testing.T) {
		rates := new(mocks.MockRateRepository)
		svc := NewExchangeService(rates, logger.NewNopLogger())

		quote, err := svc.GetExchangeRate(ctx, "EURO", "USD", testDate, nil)

		assert.Nil(t, quote)
		assert.ErrorIs(t, err, entity.ErrInvalidCurrency)
		rates.AssertNotCalled(t, "RateToEUR", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Rate not found", func(t *testing.T) {
		rates := new(mocks.MockRateRepository)
		svc := NewExchangeService(rates, logger.NewNopLogger())
		rates.On("RateToEUR", ctx, "XAU", testDate, noAfter).Return(0.0, entity.ErrRateNotFound)

		_, err := svc.GetExchangeRate(ctx, "EUR", "XAU", testDate, nil)

		assert.ErrorIs(t, err, entity.ErrRateNotFound)
	})
}

func TestGetExchangeRates(t *testing.T) {
	ctx := context.Background()

	t.Run("Keeps target order", func(t *testing.T) {
		rates := new(mocks.MockRateRepository)
		svc := NewExchangeService(rates, logger.NewNopLogger())
		targets := []string{"USD", "GBP", "JPY", "CHF", "CAD", "AUD"}
		values := map[string]float64{"USD": 1.04, "GBP": 0.83, "JPY": 164.5, "CHF": 0.94, "CAD": 1.5, "AUD": 1.67}
		for c, v := range values {
			rates.On("RateToEUR", mock.Anything, c, testDate, noAfter).Return(v, nil).Once()
		}

		collection, err := svc.GetExchangeRates(ctx, "EUR", targets, testDate, nil)

		require.NoError(t, err)
		require.Equal(t, len(targets), collection.Len())
		for i, q := range collection.Quotes() {
			assert.Equal(t, targets[i], q.To)
			assert.Equal(t, values[targets[i]], q.Rate)
		}
		rates.AssertExpectations(t)
	})

	t.Run("First failure is returned", func(t *testing.T) {
		rates := new(mocks.MockRateRepository)
		svc := NewExchangeService(rates, logger.NewNopLogger())
		rates.On("RateToEUR", mock.Anything, "USD", testDate, noAfter).Return(1.04, nil).Maybe()
		rates.On("RateToEUR", mock.Anything, "XAU", testDate, noAfter).Return(0.0, entity.ErrRateNotFound)

		collection, err := svc.GetExchangeRates(ctx, "EUR", []string{"USD", "XAU"}, testDate, nil)

		assert.Nil(t, collection)
		assert.ErrorIs(t, err, entity.ErrRateNotFound)
	})

	t.Run("No targets", func(t *testing.T) {
		svc := NewExchangeService(new(mocks.MockRateRepository), logger.NewNopLogger())

		collection, err := svc.GetExchangeRates(ctx, "EUR", nil, testDate, nil)

		require.NoError(t, err)
		assert.True(t, collection.IsEmpty())
	})
}

func TestExchangeServiceTimeSeries(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 12, 23, 0, 0, 0, 0, time.UTC)

	t.Run("Normalizes currencies", func(t *testing.T) {
		rates := new(mocks.MockRateRepository)
		svc := NewExchangeService(rates, logger.NewNopLogger())
		ts := entity.NewTimeSeries()
		ts.Set("2024-12-23", "USD", 1.04)
		rates.On("TimeSeries", ctx, start, testDate, []string{"USD", "GBP"}).Return(ts, nil).Once()

		got, err := svc.TimeSeries(ctx, start, testDate, []string{"usd", "GBP"})

		require.NoError(t, err)
		assert.Same(t, ts, got)
		rates.AssertExpectations(t)
	})

	t.Run("End before start", func(t *testing.T) {
		rates := new(mocks.MockRateRepository)
		svc := NewExchangeService(rates, logger.NewNopLogger())

		_, err := svc.TimeSeries(ctx, testDate, start, nil)

		assert.ErrorIs(t, err, entity.ErrInvalidDateRange)
		rates.AssertNotCalled(t, "TimeSeries", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Repository error", func(t *testing.T) {
		rates := new(mocks.MockRateRepository)
		svc := NewExchangeService(rates, logger.NewNopLogger())
		rates.On("TimeSeries", ctx, start, testDate, mock.Anything).Return(nil, entity.ErrMissingStructure)

		_, err := svc.TimeSeries(ctx, start, testDate, nil)

		assert.ErrorIs(t, err, entity.ErrMissingStructure)
	})
}

func TestExchangeServiceDelegation(t *testing.T) {
	ctx := context.Background()
	rates := new(mocks.MockRateRepository)
	svc := NewExchangeService(rates, nil)

	published := time.Date(2024, 12, 27, 15, 0, 0, 0, time.UTC)
	rates.On("SupportedCurrencies", ctx).Return([]string{"EUR", "USD"}).Once()
	rates.On("LastUpdateTime", testDate).Return(published).Once()

	assert.Equal(t, []string{"EUR", "USD"}, svc.SupportedCurrencies(ctx))
	assert.Equal(t, published, svc.LastUpdateTime(testDate))
	rates.AssertExpectations(t)
}
