package handler

import (
	"net/http"

	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/logger"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/metrics"
	"github.com/damon-houk/ecb-exchange-rates/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

// RouterConfig wires the handlers into a router. Quotes and Gatherer are optional.
type RouterConfig struct {
	Rates    *RateHandler
	Quotes   *QuoteHandler
	Logger   logger.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// NewRouter builds the API router with its middleware chain
func NewRouter(cfg RouterConfig) *mux.Router {
	log := logger.OrDefault(cfg.Logger)

	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.MetricsMiddleware(cfg.Metrics))

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		sendJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}).Methods("GET")

	if cfg.Gatherer != nil {
		router.Handle("/metrics", metrics.Handler(cfg.Gatherer)).Methods("GET")
	}

	cfg.Rates.RegisterRoutes(router)
	if cfg.Quotes != nil {
		cfg.Quotes.RegisterRoutes(router)
	}

	return router
}
