package service

import (
	"context"
	"errors"
	"time"

	"github.com/damon-houk/ecb-exchange-rates/internal/domain/entity"
	domainservice "github.com/damon-houk/ecb-exchange-rates/internal/domain/service"
)

// ErrMultipleTargets is returned by Get when several target currencies were set
var ErrMultipleTargets = errors.New("several target currencies set, use GetAll")

// ExchangeBuilder assembles a quote request. Unset fields default to EUR for
// both currencies and today in the publisher timezone for the date.
type ExchangeBuilder struct {
	service      *ExchangeService
	from         string
	to           string
	targets      []string
	date         *time.Time
	updatedAfter *time.Time
	now          func() time.Time
}

// Exchange starts a new quote request
func (s *ExchangeService) Exchange() *ExchangeBuilder {
	return &ExchangeBuilder{
		service: s,
		from:    entity.BaseCurrency,
		to:      entity.BaseCurrency,
		now:     time.Now,
	}
}

// FromCurrency sets the source currency; EUR when unset
func (b *ExchangeBuilder) FromCurrency(currency string) *ExchangeBuilder {
	b.from = currency
	return b
}

// ToCurrency sets the single target currency used by Get
func (b *ExchangeBuilder) ToCurrency(currency string) *ExchangeBuilder {
	b.to = currency
	return b
}

// ToCurrencies sets several targets, resolved together by GetAll
func (b *ExchangeBuilder) ToCurrencies(currencies ...string) *ExchangeBuilder {
	b.targets = append([]string(nil), currencies...)
	return b
}

// Date sets the requested date; today when unset
func (b *ExchangeBuilder) Date(date time.Time) *ExchangeBuilder {
	b.date = &date
	return b
}

// UpdatedAfter only accepts data published after t. The location of t decides
// whether the publication hour has passed.
func (b *ExchangeBuilder) UpdatedAfter(t time.Time) *ExchangeBuilder {
	b.updatedAfter = &t
	return b
}

func (b *ExchangeBuilder) resolvedDate() time.Time {
	if b.date != nil {
		return *b.date
	}
	return domainservice.Today(b.now())
}

// Get resolves a single quote
func (b *ExchangeBuilder) Get(ctx context.Context) (*entity.Quote, error) {
	if len(b.targets) > 0 {
		return nil, ErrMultipleTargets
	}
	return b.service.GetExchangeRate(ctx, b.from, b.to, b.resolvedDate(), b.updatedAfter)
}

// GetAll resolves one quote per target currency, or for the single target when
// ToCurrencies was not used
func (b *ExchangeBuilder) GetAll(ctx context.Context) (*entity.QuoteCollection, error) {
	targets := b.targets
	if len(targets) == 0 {
		targets = []string{b.to}
	}
	return b.service.GetExchangeRates(ctx, b.from, targets, b.resolvedDate(), b.updatedAfter)
}
