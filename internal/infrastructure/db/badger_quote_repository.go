package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/damon-houk/ecb-exchange-rates/internal/domain/entity"
	"github.com/dgraph-io/badger/v3"
)

const quoteKeyPrefix = "quote:"

// BadgerQuoteRepository implements the quote repository interface using BadgerDB
type BadgerQuoteRepository struct {
	db *badger.DB
}

// NewBadgerQuoteRepository creates a new BadgerDB quote repository
func NewBadgerQuoteRepository(db *badger.DB) *BadgerQuoteRepository {
	return &BadgerQuoteRepository{db: db}
}

// Store saves a quote record and returns its ID
func (r *BadgerQuoteRepository) Store(ctx context.Context, record *entity.QuoteRecord) (string, error) {
	if err := record.Validate(); err != nil {
		return "", err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal quote record: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(quoteKeyPrefix+record.ID), data)
	})
	if err != nil {
		return "", fmt.Errorf("failed to store quote record: %w", err)
	}

	return record.ID, nil
}

// FindByID retrieves a quote record by its unique identifier
func (r *BadgerQuoteRepository) FindByID(ctx context.Context, id string) (*entity.QuoteRecord, error) {
	var record entity.QuoteRecord

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(quoteKeyPrefix + id))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", entity.ErrQuoteNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve quote record: %w", err)
	}

	return &record, nil
}
