// Package metrics defines Prometheus metrics for melicalc.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "melicalc"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})
)

// Marketplace API metrics.
var (
	MeliAPICallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "meli_api_calls_total",
		Help:      "Total number of marketplace API calls by endpoint.",
	}, []string{"endpoint"})

	MeliAPIErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "meli_api_errors_total",
		Help:      "Total number of failed marketplace API calls by endpoint.",
	}, []string{"endpoint"})

	TokenRefreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of OAuth token refreshes.",
	})
)

// Resolution pipeline metrics.
var (
	ResolveAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resolve_attempts_total",
		Help:      "Resolution strategy attempts by strategy and outcome.",
	}, []string{"strategy", "outcome"})

	ResolveNotFoundTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resolve_not_found_total",
		Help:      "Evaluations where no strategy produced a record.",
	})

	FeeFallbackTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fee_fallback_total",
		Help:      "Evaluations that used the static fee table because the live quote failed.",
	})
)

// Batch metrics.
var (
	BatchItemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batch_items_total",
		Help:      "Batch items processed by result.",
	}, []string{"result"})
)
