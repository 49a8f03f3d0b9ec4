package entity

import (
	"fmt"
	"strings"
)

// BaseCurrency is the quotation basis of the publisher. It is never looked up
// remotely: its rate to itself is exactly 1.
const BaseCurrency = "EUR"

var defaultCurrencies = []string{"USD", "GBP", "JPY", "CHF", "CAD", "AUD", "NZD", "SEK", "NOK", "DKK"}

// DefaultCurrencies returns the major currencies requested when a caller names none
func DefaultCurrencies() []string {
	out := make([]string, len(defaultCurrencies))
	copy(out, defaultCurrencies)
	return out
}

// NormalizeCurrency upper-cases and trims a currency code and checks it is made
// of three ASCII letters. Codes are not checked against an ISO list.
func NormalizeCurrency(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if len(c) != 3 {
		return "", fmt.Errorf("%w: %q must be 3 letters", ErrInvalidCurrency, code)
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: %q must be 3 letters", ErrInvalidCurrency, code)
		}
	}
	return c, nil
}

// NormalizeCurrencies applies NormalizeCurrency to every code, keeping order
func NormalizeCurrencies(codes []string) ([]string, error) {
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		c, err := NormalizeCurrency(code)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
