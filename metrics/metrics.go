// Package metrics registers the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediabox_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mediabox_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediabox_uploads_total",
			Help: "Blobs written, by media category.",
		},
		[]string{"main"},
	)

	// SoftFailuresTotal counts errors that were logged and swallowed.
	SoftFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mediabox_soft_failures_total",
			Help: "Best-effort operations that failed without failing the request.",
		},
		[]string{"op"},
	)
)
