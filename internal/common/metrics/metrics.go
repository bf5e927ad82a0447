// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MockRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mock_requests_total",
			Help: "Total number of requests handled by the mock router",
		},
		[]string{"method", "rule", "status"},
	)

	MockRequestsUnhandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mock_requests_unhandled_total",
			Help: "Requests that matched no routing rule",
		},
		[]string{"method"},
	)

	MockRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "mock_request_duration_seconds",
			Help: "Duration of mock request handling in seconds",
		},
		[]string{"rule"},
	)

	LoadIterationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "load_iterations_total",
			Help: "Total load-test iterations by outcome",
		},
		[]string{"outcome"},
	)

	LoadVirtualUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "load_virtual_users",
			Help: "Number of currently active virtual users",
		},
	)
)
