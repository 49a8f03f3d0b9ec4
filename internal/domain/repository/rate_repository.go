// Package repository declares the data access contracts of the domain
package repository

import (
	"context"
	"time"

	"github.com/damon-houk/ecb-exchange-rates/internal/domain/entity"
)

// RateRepository defines access to the publisher's EUR-based rates
type RateRepository interface {
	// RateToEUR returns the EUR rate of currency for the effective date derived
	// from date and the optional updatedAfter constraint. EUR is always 1.
	RateToEUR(ctx context.Context, currency string, date time.Time, updatedAfter *time.Time) (float64, error)

	// TimeSeries returns the rates for every published date in [start, end].
	// An empty currencies list requests the default currencies unfiltered.
	TimeSeries(ctx context.Context, start, end time.Time, currencies []string) (*entity.TimeSeries, error)

	// SupportedCurrencies never fails; it falls back to the default list plus EUR
	SupportedCurrencies(ctx context.Context) []string

	// LastUpdateTime returns the nominal publication instant for date
	LastUpdateTime(date time.Time) time.Time
}
