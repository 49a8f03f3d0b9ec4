// Package service implements the application use cases: resolving quotes,
// time series and the quote journal.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/damon-houk/ecb-exchange-rates/internal/domain/entity"
	"github.com/damon-houk/ecb-exchange-rates/internal/domain/repository"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/logger"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/middleware"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentLookups bounds the per-target lookups of GetExchangeRates
const maxConcurrentLookups = 4

// ExchangeService derives arbitrary currency pair rates from EUR based rates.
// It holds no state between calls.
type ExchangeService struct {
	rates  repository.RateRepository
	logger logger.Logger
}

// NewExchangeService creates a new exchange service
func NewExchangeService(rates repository.RateRepository, log logger.Logger) *ExchangeService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &ExchangeService{
		rates:  rates,
		logger: log,
	}
}

// Rate returns how many units of to one unit of from is worth. Identical
// currencies cost no lookup, pairs involving EUR cost one and any other pair is
// crossed through EUR with two. Repository errors are returned unchanged.
func (s *ExchangeService) Rate(ctx context.Context, from, to string, date time.Time, updatedAfter *time.Time) (float64, error) {
	if from == to {
		return 1.0, nil
	}

	if from == entity.BaseCurrency {
		return s.rates.RateToEUR(ctx, to, date, updatedAfter)
	}

	if to == entity.BaseCurrency {
		fromRate, err := s.rates.RateToEUR(ctx, from, date, updatedAfter)
		if err != nil {
			return 0, err
		}
		if fromRate == 0 {
			return 0, fmt.Errorf("%w: cannot invert %s", entity.ErrZeroRate, from)
		}
		return 1.0 / fromRate, nil
	}

	fromRate, err := s.rates.RateToEUR(ctx, from, date, updatedAfter)
	if err != nil {
		return 0, err
	}

	toRate, err := s.rates.RateToEUR(ctx, to, date, updatedAfter)
	if err != nil {
		return 0, err
	}

	if fromRate == 0 {
		return 0, fmt.Errorf("%w: cannot cross %s to %s", entity.ErrZeroRate, from, to)
	}

	return toRate / fromRate, nil
}

// GetExchangeRate normalizes the currency codes and resolves a quote. The
// quote carries the requested date, not the effective one.
func (s *ExchangeService) GetExchangeRate(ctx context.Context, from, to string, date time.Time, updatedAfter *time.Time) (*entity.Quote, error) {
	requestID := middleware.GetRequestID(ctx)

	from, err := entity.NormalizeCurrency(from)
	if err != nil {
		return nil, err
	}
	to, err = entity.NormalizeCurrency(to)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Resolving exchange rate", map[string]interface{}{
		"request_id": requestID,
		"from":       from,
		"to":         to,
		"date":       date.Format(entity.DateLayout),
	})

	rate, err := s.Rate(ctx, from, to, date, updatedAfter)
	if err != nil {
		s.logger.Error("Failed to resolve exchange rate", map[string]interface{}{
			"request_id": requestID,
			"from":       from,
			"to":         to,
			"date":       date.Format(entity.DateLayout),
			"error":      err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Resolved exchange rate", map[string]interface{}{
		"request_id": requestID,
		"from":       from,
		"to":         to,
		"date":       date.Format(entity.DateLayout),
		"rate":       rate,
	})

	return &entity.Quote{
		From:         from,
		To:           to,
		Rate:         rate,
		Date:         date,
		UpdatedAfter: copyTime(updatedAfter),
	}, nil
}

// copyTime keeps quotes from sharing the caller's updatedAfter
func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// GetExchangeRates resolves one quote per target. Lookups run concurrently but
// the collection keeps the order of targets. The first failure cancels the
// remaining lookups and is returned.
func (s *ExchangeService) GetExchangeRates(ctx context.Context, from string, targets []string, date time.Time, updatedAfter *time.Time) (*entity.QuoteCollection, error) {
	quotes := make([]*entity.Quote, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)

	for i, to := range targets {
		i, to := i, to
		g.Go(func() error {
			quote, err := s.GetExchangeRate(gctx, from, to, date, updatedAfter)
			if err != nil {
				return err
			}
			quotes[i] = quote
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return entity.NewQuoteCollection(quotes...), nil
}

// TimeSeries returns the rates published between start and end inclusive. An
// empty currencies list covers the default currencies.
func (s *ExchangeService) TimeSeries(ctx context.Context, start, end time.Time, currencies []string) (*entity.TimeSeries, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %s is before start %s",
			entity.ErrInvalidDateRange, end.Format(entity.DateLayout), start.Format(entity.DateLayout))
	}

	currencies, err := entity.NormalizeCurrencies(currencies)
	if err != nil {
		return nil, err
	}

	ts, err := s.rates.TimeSeries(ctx, start, end, currencies)
	if err != nil {
		s.logger.Error("Failed to fetch time series", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"start":      start.Format(entity.DateLayout),
			"end":        end.Format(entity.DateLayout),
			"currencies": currencies,
			"error":      err.Error(),
		})
		return nil, err
	}

	return ts, nil
}

// SupportedCurrencies never fails
func (s *ExchangeService) SupportedCurrencies(ctx context.Context) []string {
	return s.rates.SupportedCurrencies(ctx)
}

// LastUpdateTime returns when the publisher releases the rates for the given date
func (s *ExchangeService) LastUpdateTime(date time.Time) time.Time {
	return s.rates.LastUpdateTime(date)
}
