package handler

import (
	"net/http"

	"github.com/damon-houk/ecb-exchange-rates/internal/application/service"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/logger"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// QuoteHandler handles HTTP requests for journaled quotes
type QuoteHandler struct {
	journal *service.QuoteJournal
	logger  logger.Logger
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(journal *service.QuoteJournal, log logger.Logger) *QuoteHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &QuoteHandler{
		journal: journal,
		logger:  log,
	}
}

// GetQuote handles retrieving a journaled quote by ID
func (h *QuoteHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	h.logger.Info("Handling get quote request", map[string]interface{}{
		"request_id": requestID,
		"id":         id,
	})

	record, err := h.journal.Find(r.Context(), id)
	if err != nil {
		sendServiceError(w, h.logger, err, requestID)
		return
	}

	sendJSON(w, http.StatusOK, QuoteRecordResponse{
		ID:        record.ID,
		CreatedAt: record.CreatedAt,
		Quote:     newQuoteResponse(&record.Quote, ""),
	})
}

// RegisterRoutes registers the quote handler routes
func (h *QuoteHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/quotes/{id}", h.GetQuote).Methods("GET")

	h.logger.Info("Quote routes registered", map[string]interface{}{
		"routes": []string{
			"GET /quotes/{id}",
		},
	})
}
