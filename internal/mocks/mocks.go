// Package mocks provides testify mocks for the repository, provider and
// logger interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/damon-houk/ecb-exchange-rates/internal/domain/entity"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/logger"
	"github.com/stretchr/testify/mock"
)

// MockRateRepository mocks the RateRepository interface
type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) RateToEUR(ctx context.Context, currency string, date time.Time, updatedAfter *time.Time) (float64, error) {
	args := m.Called(ctx, currency, date, updatedAfter)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockRateRepository) TimeSeries(ctx context.Context, start, end time.Time, currencies []string) (*entity.TimeSeries, error) {
	args := m.Called(ctx, start, end, currencies)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TimeSeries), args.Error(1)
}

func (m *MockRateRepository) SupportedCurrencies(ctx context.Context) []string {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockRateRepository) LastUpdateTime(date time.Time) time.Time {
	args := m.Called(date)
	return args.Get(0).(time.Time)
}

// MockQuoteRepository mocks the QuoteRepository interface
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) Store(ctx context.Context, record *entity.QuoteRecord) (string, error) {
	args := m.Called(ctx, record)
	return args.String(0), args.Error(1)
}

func (m *MockQuoteRepository) FindByID(ctx context.Context, id string) (*entity.QuoteRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuoteRecord), args.Error(1)
}

// MockRateProvider mocks the publisher rate provider interface
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchRates(ctx context.Context, date time.Time, currencies []string) (map[string]float64, error) {
	args := m.Called(ctx, date, currencies)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

func (m *MockRateProvider) FetchTimeSeries(ctx context.Context, start, end time.Time, currencies []string) (*entity.TimeSeries, error) {
	args := m.Called(ctx, start, end, currencies)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TimeSeries), args.Error(1)
}

// MockDataProbe mocks the data availability probe
type MockDataProbe struct {
	mock.Mock
}

func (m *MockDataProbe) HasData(ctx context.Context, date time.Time) bool {
	args := m.Called(ctx, date)
	return args.Bool(0)
}

// MockDateResolver mocks the effective date resolver
type MockDateResolver struct {
	mock.Mock
}

func (m *MockDateResolver) Resolve(ctx context.Context, date time.Time, updatedAfter *time.Time) time.Time {
	args := m.Called(ctx, date, updatedAfter)
	return args.Get(0).(time.Time)
}

// MockFetcher mocks the HTTP fetch boundary
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Get(ctx context.Context, url string) ([]byte, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockLogger mocks the logger interface
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Info(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Warn(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Error(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Fatal(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) WithField(key string, value interface{}) logger.Logger {
	args := m.Called(key, value)
	return args.Get(0).(logger.Logger)
}

func (m *MockLogger) WithFields(fields map[string]interface{}) logger.Logger {
	args := m.Called(fields)
	return args.Get(0).(logger.Logger)
}
