// Package handler exposes the exchange rate services over HTTP
package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/damon-houk/ecb-exchange-rates/internal/application/service"
	"github.com/damon-houk/ecb-exchange-rates/internal/domain/entity"
	domainservice "github.com/damon-houk/ecb-exchange-rates/internal/domain/service"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/logger"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// RateHandler handles HTTP requests for quotes, conversions and time series
type RateHandler struct {
	service *service.ExchangeService
	journal *service.QuoteJournal
	logger  logger.Logger
	now     func() time.Time
}

// NewRateHandler creates a new rate handler. A nil journal disables quote IDs.
func NewRateHandler(service *service.ExchangeService, journal *service.QuoteJournal, log logger.Logger) *RateHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &RateHandler{
		service: service,
		journal: journal,
		logger:  log,
		now:     time.Now,
	}
}

// GetRate handles a single quote request
func (h *RateHandler) GetRate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()

	date, updatedAfter, ok := h.parseDates(w, r, requestID)
	if !ok {
		return
	}

	quote, err := h.service.GetExchangeRate(r.Context(),
		valueOr(query.Get("from"), entity.BaseCurrency),
		valueOr(query.Get("to"), entity.BaseCurrency),
		date, updatedAfter)
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	sendJSON(w, http.StatusOK, newQuoteResponse(quote, h.record(r.Context(), quote)))
}

// GetRates handles a request for one quote per target currency
func (h *RateHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()

	targets := splitList(query.Get("to"))
	if len(targets) == 0 {
		sendErrorResponse(w, h.logger, "Missing to parameter",
			"The 'to' query parameter must list at least one currency, e.g. USD,GBP", http.StatusBadRequest, requestID)
		return
	}

	date, updatedAfter, ok := h.parseDates(w, r, requestID)
	if !ok {
		return
	}

	collection, err := h.service.GetExchangeRates(r.Context(),
		valueOr(query.Get("from"), entity.BaseCurrency), targets, date, updatedAfter)
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	resp := QuotesResponse{Quotes: make([]QuoteResponse, 0, collection.Len())}
	for _, quote := range collection.Quotes() {
		resp.Quotes = append(resp.Quotes, newQuoteResponse(quote, h.record(r.Context(), quote)))
	}

	sendJSON(w, http.StatusOK, resp)
}

// Convert handles converting an amount between two currencies
func (h *RateHandler) Convert(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()

	rawAmount := query.Get("amount")
	if rawAmount == "" {
		sendErrorResponse(w, h.logger, "Missing amount parameter",
			"The 'amount' query parameter is required", http.StatusBadRequest, requestID)
		return
	}

	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		h.logger.Warn("Invalid amount", map[string]interface{}{
			"request_id": requestID,
			"amount":     rawAmount,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Invalid amount",
			"Amount must be a decimal number", http.StatusBadRequest, requestID)
		return
	}

	date, updatedAfter, ok := h.parseDates(w, r, requestID)
	if !ok {
		return
	}

	quote, err := h.service.GetExchangeRate(r.Context(),
		valueOr(query.Get("from"), entity.BaseCurrency),
		valueOr(query.Get("to"), entity.BaseCurrency),
		date, updatedAfter)
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	converted := quote.ConvertDecimal(amount)

	h.logger.Info("Amount converted", map[string]interface{}{
		"request_id": requestID,
		"from":       quote.From,
		"to":         quote.To,
		"amount":     amount.String(),
		"converted":  converted.String(),
	})

	sendJSON(w, http.StatusOK, ConvertResponse{
		Quote:     newQuoteResponse(quote, h.record(r.Context(), quote)),
		Amount:    amount,
		Converted: converted,
	})
}

// GetTimeSeries handles a request for the rates published in a date range
func (h *RateHandler) GetTimeSeries(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()

	start, err := parseDate(query.Get("start"))
	if err != nil {
		sendErrorResponse(w, h.logger, "Invalid start date",
			"The 'start' query parameter is required in YYYY-MM-DD format", http.StatusBadRequest, requestID)
		return
	}

	end, err := parseDate(query.Get("end"))
	if err != nil {
		sendErrorResponse(w, h.logger, "Invalid end date",
			"The 'end' query parameter is required in YYYY-MM-DD format", http.StatusBadRequest, requestID)
		return
	}

	ts, err := h.service.TimeSeries(r.Context(), start, end, splitList(query.Get("currencies")))
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	sendJSON(w, http.StatusOK, TimeSeriesResponse{
		Start: start.Format(entity.DateLayout),
		End:   end.Format(entity.DateLayout),
		Dates: ts.Dates(),
		Rates: ts,
	})
}

// GetCurrencies lists the supported currencies
func (h *RateHandler) GetCurrencies(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, CurrenciesResponse{
		Currencies: h.service.SupportedCurrencies(r.Context()),
	})
}

// RegisterRoutes registers the rate handler routes
func (h *RateHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/rates", h.GetRate).Methods("GET")
	router.HandleFunc("/rates/multi", h.GetRates).Methods("GET")
	router.HandleFunc("/convert", h.Convert).Methods("GET")
	router.HandleFunc("/timeseries", h.GetTimeSeries).Methods("GET")
	router.HandleFunc("/currencies", h.GetCurrencies).Methods("GET")

	h.logger.Info("Rate routes registered", map[string]interface{}{
		"routes": []string{
			"GET /rates",
			"GET /rates/multi",
			"GET /convert",
			"GET /timeseries",
			"GET /currencies",
		},
	})
}

// parseDates reads the optional date and updated_after parameters. It writes
// the error response itself and reports false when either is invalid.
func (h *RateHandler) parseDates(w http.ResponseWriter, r *http.Request, requestID string) (time.Time, *time.Time, bool) {
	query := r.URL.Query()

	date := domainservice.Today(h.now())
	if raw := query.Get("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			h.logger.Warn("Invalid date format", map[string]interface{}{
				"request_id": requestID,
				"date":       raw,
				"error":      err.Error(),
			})
			sendErrorResponse(w, h.logger, "Invalid date format",
				"Date must be in YYYY-MM-DD format", http.StatusBadRequest, requestID)
			return time.Time{}, nil, false
		}
		date = parsed
	}

	var updatedAfter *time.Time
	if raw := query.Get("updated_after"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("Invalid updated_after format", map[string]interface{}{
				"request_id":    requestID,
				"updated_after": raw,
				"error":         err.Error(),
			})
			sendErrorResponse(w, h.logger, "Invalid updated_after format",
				"updated_after must be an RFC 3339 timestamp, e.g. 2024-12-27T17:00:00+01:00", http.StatusBadRequest, requestID)
			return time.Time{}, nil, false
		}
		updatedAfter = &parsed
	}

	return date, updatedAfter, true
}

// record journals quote when a journal is configured. Journal failures only
// cost the client its quote ID.
func (h *RateHandler) record(ctx context.Context, quote *entity.Quote) string {
	if h.journal == nil {
		return ""
	}

	rec, err := h.journal.Record(ctx, quote)
	if err != nil {
		h.logger.Warn("Failed to journal quote", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"error":      err.Error(),
		})
		return ""
	}
	return rec.ID
}

// parseDate reads a calendar date in the publisher timezone
func parseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(entity.DateLayout, raw, domainservice.PublisherLocation())
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
