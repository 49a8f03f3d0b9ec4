// Package metrics exposes Prometheus instrumentation for upstream fetches,
// date probes and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ecbrates"

// Upstream fetch outcomes
const (
	OutcomeSuccess = "success"
	OutcomeStatus  = "status_error"
	OutcomeError   = "transport_error"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	upstreamRequests *prometheus.CounterVec
	upstreamDuration prometheus.Histogram
	probes           *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New registers the collectors with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		upstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Requests sent to the exchange rate source, by outcome.",
		}, []string{"outcome"}),
		upstreamDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Latency of requests sent to the exchange rate source.",
			Buckets:   prometheus.DefBuckets,
		}),
		probes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "probes_total",
			Help:      "Data availability probes, by result.",
		}, []string{"result"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served, by route, method and status code.",
		}, []string{"route", "method", "code"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests served.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// ObserveUpstream records one request to the exchange rate source
func (m *Metrics) ObserveUpstream(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(outcome).Inc()
	m.upstreamDuration.Observe(elapsed.Seconds())
}

// ObserveProbe records one data availability probe
func (m *Metrics) ObserveProbe(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.probes.WithLabelValues(result).Inc()
}

// ObserveHTTP records one served HTTP request
func (m *Metrics) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// Handler serves the collectors gathered by g in the Prometheus text format
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
