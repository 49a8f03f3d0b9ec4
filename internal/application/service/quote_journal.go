package service

import (
	"context"
	"time"

	"github.com/damon-houk/ecb-exchange-rates/internal/domain/entity"
	"github.com/damon-houk/ecb-exchange-rates/internal/domain/repository"
	"github.com/google/uuid"
)

// QuoteJournal records quotes served to API clients so they can be looked up
// later by ID. It is never consulted when resolving rates.
type QuoteJournal struct {
	repo repository.QuoteRepository
	now  func() time.Time
}

// NewQuoteJournal creates a new quote journal
func NewQuoteJournal(repo repository.QuoteRepository) *QuoteJournal {
	return &QuoteJournal{repo: repo, now: time.Now}
}

// Record stores a copy of quote under a new ID
func (j *QuoteJournal) Record(ctx context.Context, quote *entity.Quote) (*entity.QuoteRecord, error) {
	record := &entity.QuoteRecord{
		ID:        uuid.New().String(),
		CreatedAt: j.now().UTC(),
		Quote:     *quote,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	if _, err := j.repo.Store(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// Find retrieves a recorded quote by ID
func (j *QuoteJournal) Find(ctx context.Context, id string) (*entity.QuoteRecord, error) {
	return j.repo.FindByID(ctx, id)
}
