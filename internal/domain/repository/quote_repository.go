package repository

import (
	"context"

	"github.com/damon-houk/ecb-exchange-rates/internal/domain/entity"
)

// QuoteRepository defines the interface for the quote journal
type QuoteRepository interface {
	// Store saves a record and returns its ID
	Store(ctx context.Context, record *entity.QuoteRecord) (string, error)

	// FindByID retrieves a record by its unique identifier
	FindByID(ctx context.Context, id string) (*entity.QuoteRecord, error)
}
