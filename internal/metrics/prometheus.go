package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Exchange metrics
	ExchangeAPICalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hermes_exchange_api_calls_total",
			Help: "Total number of exchange API calls",
		},
		[]string{"exchange", "endpoint", "status"}, // status: success|error|rate_limited
	)

	ExchangeAPIErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hermes_exchange_api_errors_total",
			Help: "Total number of exchange API errors",
		},
		[]string{"exchange", "error_type"},
	)

	ExchangeAPILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hermes_exchange_api_latency_seconds",
			Help:    "Exchange API latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"exchange", "endpoint"},
	)

	// Catalog metrics
	CatalogLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hermes_catalog_loads_total",
			Help: "Total number of market/currency catalog loads",
		},
		[]string{"exchange", "trigger"}, // trigger: initial|reload
	)

	CatalogSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hermes_catalog_markets",
			Help: "Number of markets in the loaded catalog",
		},
		[]string{"exchange"},
	)

	// Cache metrics
	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hermes_response_cache_hits_total",
			Help: "Response cache hits and misses",
		},
		[]string{"exchange", "result"}, // result: hit|miss
	)
)

var registerOnce sync.Once

// Register registers all collectors with the default registry. Safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ExchangeAPICalls,
			ExchangeAPIErrors,
			ExchangeAPILatency,
			CatalogLoads,
			CatalogSize,
			CacheHits,
		)
	})
}

// Handler returns the HTTP handler exposing the metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveAPICall records a single exchange API call outcome
func ObserveAPICall(exchange, endpoint, status string, started time.Time) {
	ExchangeAPICalls.WithLabelValues(exchange, endpoint, status).Inc()
	ExchangeAPILatency.WithLabelValues(exchange, endpoint).Observe(time.Since(started).Seconds())
}
