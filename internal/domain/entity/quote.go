package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the publisher's calendar date format
const DateLayout = "2006-01-02"

// Quote is a resolved exchange rate: 1 From == Rate To on Date.
type Quote struct {
	From         string
	To           string
	Rate         float64
	Date         time.Time
	UpdatedAfter *time.Time
}

// Convert returns amount expressed in the target currency
func (q *Quote) Convert(amount float64) float64 {
	return amount * q.Rate
}

// ConvertDecimal converts amount and rounds the result to cents
func (q *Quote) ConvertDecimal(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(decimal.NewFromFloat(q.Rate)).Round(2)
}

// ToMap returns the quote keyed the way it is serialized
func (q *Quote) ToMap() map[string]interface{} {
	var updatedAfter interface{}
	if q.UpdatedAfter != nil {
		updatedAfter = q.UpdatedAfter.Format(time.RFC3339)
	}

	return map[string]interface{}{
		"from_currency": q.From,
		"to_currency":   q.To,
		"rate":          q.Rate,
		"date":          q.Date.Format(DateLayout),
		"updated_after": updatedAfter,
	}
}

// String renders the quote as "1 FROM = RATE TO (on YYYY-MM-DD)"
func (q *Quote) String() string {
	return fmt.Sprintf("1 %s = %s %s (on %s)",
		q.From, strconv.FormatFloat(q.Rate, 'f', -1, 64), q.To, q.Date.Format(DateLayout))
}

type quoteJSON struct {
	From         string     `json:"from_currency"`
	To           string     `json:"to_currency"`
	Rate         float64    `json:"rate"`
	Date         string     `json:"date"`
	UpdatedAfter *time.Time `json:"updated_after"`
}

// MarshalJSON encodes the date as YYYY-MM-DD
func (q Quote) MarshalJSON() ([]byte, error) {
	return json.Marshal(quoteJSON{
		From:         q.From,
		To:           q.To,
		Rate:         q.Rate,
		Date:         q.Date.Format(DateLayout),
		UpdatedAfter: q.UpdatedAfter,
	})
}

// UnmarshalJSON is the inverse of MarshalJSON; the date is parsed as UTC midnight
func (q *Quote) UnmarshalJSON(data []byte) error {
	var raw quoteJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	date, err := time.Parse(DateLayout, raw.Date)
	if err != nil {
		return fmt.Errorf("parse quote date %q: %w", raw.Date, err)
	}

	*q = Quote{
		From:         raw.From,
		To:           raw.To,
		Rate:         raw.Rate,
		Date:         date,
		UpdatedAfter: raw.UpdatedAfter,
	}
	return nil
}
