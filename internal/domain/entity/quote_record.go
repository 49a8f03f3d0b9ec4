package entity

import (
	"errors"
	"time"
)

// QuoteRecord is a quote served over HTTP, kept in the quote journal
type QuoteRecord struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Quote     Quote     `json:"quote"`
}

// Validate ensures the record can be stored
func (r *QuoteRecord) Validate() error {
	if r.ID == "" {
		return errors.New("quote record id must not be empty")
	}

	if r.Quote.From == "" || r.Quote.To == "" {
		return errors.New("quote record must name both currencies")
	}

	if r.Quote.Rate < 0 {
		return errors.New("quote record rate must not be negative")
	}

	return nil
}
