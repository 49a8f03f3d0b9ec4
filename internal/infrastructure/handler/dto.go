package handler

import (
	"time"

	"github.com/damon-houk/ecb-exchange-rates/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// QuoteResponse represents a resolved quote
type QuoteResponse struct {
	QuoteID      string     `json:"quote_id,omitempty"`
	FromCurrency string     `json:"from_currency"`
	ToCurrency   string     `json:"to_currency"`
	Rate         float64    `json:"rate"`
	Date         string     `json:"date"`
	UpdatedAfter *time.Time `json:"updated_after"`
}

func newQuoteResponse(q *entity.Quote, quoteID string) QuoteResponse {
	return QuoteResponse{
		QuoteID:      quoteID,
		FromCurrency: q.From,
		ToCurrency:   q.To,
		Rate:         q.Rate,
		Date:         q.Date.Format(entity.DateLayout),
		UpdatedAfter: q.UpdatedAfter,
	}
}

// QuotesResponse represents the response for the multi-target endpoint
type QuotesResponse struct {
	Quotes []QuoteResponse `json:"quotes"`
}

// ConvertResponse represents the response for the conversion endpoint
type ConvertResponse struct {
	Quote     QuoteResponse   `json:"quote"`
	Amount    decimal.Decimal `json:"amount"`
	Converted decimal.Decimal `json:"converted"`
}

// TimeSeriesResponse represents the response for the time series endpoint.
// Dates keeps the publisher's period order.
type TimeSeriesResponse struct {
	Start string             `json:"start"`
	End   string             `json:"end"`
	Dates []string           `json:"dates"`
	Rates *entity.TimeSeries `json:"rates"`
}

// CurrenciesResponse represents the response for the currencies endpoint
type CurrenciesResponse struct {
	Currencies []string `json:"currencies"`
}

// QuoteRecordResponse represents a quote read back from the journal
type QuoteRecordResponse struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Quote     QuoteResponse `json:"quote"`
}

// HealthResponse represents the response for the health endpoint
type HealthResponse struct {
	Status string `json:"status"`
}
