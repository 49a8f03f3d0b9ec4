package service

import (
	"context"
	"testing"
	"time"

	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/logger"
	"github.com/damon-houk/ecb-exchange-rates/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExchangeBuilder(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults to EUR today", func(t *testing.T) {
		rates := new(mocks.MockRateRepository)
		svc := NewExchangeService(rates, logger.NewNopLogger())

		b := svc.Exchange()
		// 23:30 UTC is already the next day in Brussels
		b.now = func() time.Time { return time.Date(2024, 12, 26, 23, 30, 0, 0, time.UTC) }

		quote, err := b.Get(ctx)

		require.NoError(t, err)
		assert.Equal(t, "EUR", quote.From)
		assert.Equal(t, "EUR", quote.To)
		assert.Equal(t, 1.0, quote.Rate)
		assert.Equal(t, "2024-12-27", quote.Date.Format("2006-01-02"))
		rates.AssertNotCalled(t, "RateToEUR", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Single quote", func(t *testing.T) {
		rates := new(mocks.MockRateRepository)
		svc := NewExchangeService(rates, logger.NewNopLogger())
		after := time.Date(2024, 12, 27, 17, 0, 0, 0, time.UTC)
		rates.On("RateToEUR", ctx, "USD", testDate, &after).Return(1.0444, nil).Once()

		quote, err := svc.Exchange().
			FromCurrency("USD").
			ToCurrency("EUR").
			Date(testDate).
			UpdatedAfter(after).
			Get(ctx)

		require.NoError(t, err)
		assert.InDelta(t, 1/1.0444, quote.Rate, 1e-12)
		require.NotNil(t, quote.UpdatedAfter)
		assert.True(t, after.Equal(*quote.UpdatedAfter))
	})

	t.Run("Get refuses several targets", func(t *testing.T) {
		svc := NewExchangeService(new(mocks.MockRateRepository), logger.NewNopLogger())

		_, err := svc.Exchange().ToCurrencies("USD", "GBP").Get(ctx)

		assert.ErrorIs(t, err, ErrMultipleTargets)
	})

	t.Run("GetAll", func(t *testing.T) {
		rates := new(mocks.MockRateRepository)
		svc := NewExchangeService(rates, logger.NewNopLogger())
		rates.On("RateToEUR", mock.Anything, "USD", testDate, noAfter).Return(1.0444, nil)
		rates.On("RateToEUR", mock.Anything, "GBP", testDate, noAfter).Return(0.82968, nil)

		collection, err := svc.Exchange().Date(testDate).ToCurrencies("USD", "GBP").GetAll(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, collection.Len())
		assert.Equal(t, "USD", collection.First().To)
		assert.Equal(t, "GBP", collection.Last().To)
	})

	t.Run("GetAll quotes own their updated after", func(t *testing.T) {
		rates := new(mocks.MockRateRepository)
		svc := NewExchangeService(rates, logger.NewNopLogger())
		after := time.Date(2024, 12, 27, 17, 0, 0, 0, time.UTC)
		rates.On("RateToEUR", mock.Anything, "USD", testDate, &after).Return(1.0444, nil)
		rates.On("RateToEUR", mock.Anything, "GBP", testDate, &after).Return(0.82968, nil)

		b := svc.Exchange().Date(testDate).UpdatedAfter(after).ToCurrencies("USD", "GBP")
		collection, err := b.GetAll(ctx)
		require.NoError(t, err)

		*collection.First().UpdatedAfter = after.Add(time.Hour)

		assert.True(t, after.Equal(*collection.Last().UpdatedAfter))
		assert.True(t, after.Equal(*b.updatedAfter))
	})

	t.Run("GetAll without targets uses the single target", func(t *testing.T) {
		rates := new(mocks.MockRateRepository)
		svc := NewExchangeService(rates, logger.NewNopLogger())
		rates.On("RateToEUR", mock.Anything, "CHF", testDate, noAfter).Return(0.94, nil).Once()

		collection, err := svc.Exchange().ToCurrency("CHF").Date(testDate).GetAll(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, collection.Len())
		assert.Equal(t, 0.94, collection.First().Rate)
	})
}
