package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/damon-houk/ecb-exchange-rates/internal/application/service"
	"github.com/damon-houk/ecb-exchange-rates/internal/domain/entity"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/logger"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}

// sendJSON writes body with the given status code
func sendJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// sendErrorResponse sends a standardized error response
func sendErrorResponse(w http.ResponseWriter, log logger.Logger, message, description string, statusCode int, requestID string) {
	log.Debug("Sending error response", map[string]interface{}{
		"request_id":  requestID,
		"status_code": statusCode,
		"message":     message,
	})

	sendJSON(w, statusCode, ErrorResponse{
		Error:       message,
		Status:      statusCode,
		Description: description,
		RequestID:   requestID,
	})
}

// errorStatus maps service errors onto an HTTP status and a client facing message
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, entity.ErrInvalidCurrency),
		errors.Is(err, entity.ErrInvalidDateRange),
		errors.Is(err, service.ErrMultipleTargets):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, entity.ErrRateNotFound):
		return http.StatusNotFound, "Exchange rate not found"
	case errors.Is(err, entity.ErrQuoteNotFound):
		return http.StatusNotFound, "Quote not found"
	case errors.Is(err, entity.ErrZeroRate):
		return http.StatusUnprocessableEntity, "Exchange rate cannot be derived"
	case errors.Is(err, entity.ErrUpstream):
		return http.StatusBadGateway, "Exchange rate source unavailable"
	case errors.Is(err, entity.ErrMalformedResponse), errors.Is(err, entity.ErrMissingStructure):
		return http.StatusBadGateway, "Unexpected response from exchange rate source"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// sendServiceError logs err at a level matching its status and sends the mapped response
func sendServiceError(w http.ResponseWriter, log logger.Logger, err error, requestID string) {
	status, message := errorStatus(err)

	fields := map[string]interface{}{
		"request_id": requestID,
		"status":     status,
		"error":      err.Error(),
	}
	if status >= http.StatusInternalServerError {
		log.Error(message, fields)
	} else {
		log.Warn(message, fields)
	}

	description := err.Error()
	if status == http.StatusInternalServerError {
		description = "An unexpected error occurred. Please try again later."
	}

	sendErrorResponse(w, log, message, description, status, requestID)
}
