package entity

import "errors"

var (
	// ErrUpstream means the publisher could not be reached or answered with a non-2xx status
	ErrUpstream = errors.New("exchange rate source unavailable")

	// ErrMalformedResponse means the response body is not valid JSON
	ErrMalformedResponse = errors.New("malformed response from exchange rate source")

	// ErrMissingStructure means an expected key or dimension is absent from the response
	ErrMissingStructure = errors.New("unexpected response structure")

	// ErrRateNotFound means the decoded rates lack the requested currency for the resolved date
	ErrRateNotFound = errors.New("exchange rate not found")

	// ErrZeroRate means a rate of exactly zero had to be used as a divisor
	ErrZeroRate = errors.New("exchange rate is zero")

	ErrInvalidCurrency  = errors.New("invalid currency code")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrQuoteNotFound    = errors.New("quote not found")
)
