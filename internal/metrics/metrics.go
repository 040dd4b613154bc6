// Package metrics provides Prometheus metrics for the card inventory API.
// Scrape these at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardinv_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cardinv_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Catalog API Metrics
	CatalogRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardinv_catalog_requests_total",
			Help: "Total number of card catalog API requests",
		},
		[]string{"op", "result"}, // result: "success", "not_found" or "failed"
	)

	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cardinv_catalog_request_duration_seconds",
			Help:    "Card catalog API call latency",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"op"},
	)

	// Inventory Metrics
	BulkImportRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardinv_bulk_import_rows_total",
			Help: "Bulk import rows by outcome",
		},
		[]string{"result"}, // "created" or "failed"
	)

	CardsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cardinv_cards_created_total",
			Help: "Total number of cards created through the API",
		},
	)
)
