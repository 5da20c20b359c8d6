// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track request patterns and performance.
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestsInFlight tracks requests currently being served
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Dictionary lookup metrics track the definition updater's outbound calls.
var (
	// LookupsTotal counts definition lookups by provider and outcome
	// (success/not_found/error).
	LookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lexicon_lookups_total",
			Help: "Total number of dictionary API lookups",
		},
		[]string{"provider", "outcome"},
	)

	// LookupDuration measures dictionary API call duration in seconds
	LookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lexicon_lookup_duration_seconds",
			Help:    "Dictionary API lookup duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	// EntriesTotal tracks the number of lexicon entries in the database
	EntriesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lexicon_entries_total",
			Help: "Total number of lexicon entries",
		},
	)

	// EntriesMissingDefinition tracks word entries still awaiting a definition
	EntriesMissingDefinition = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lexicon_entries_missing_definition",
			Help: "Number of word entries without a definition",
		},
	)
)
