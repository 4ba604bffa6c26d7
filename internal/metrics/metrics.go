package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careconnect_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "careconnect_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.005, .01, .05, .1, .5, 1, 5, 15, 60},
		},
		[]string{"method", "path"},
	)

	// Auth
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careconnect_login_attempts_total",
			Help: "Login attempts by result",
		},
		[]string{"result"}, // "success", "failure", "throttled"
	)

	// Chat relay
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careconnect_upstream_requests_total",
			Help: "Completion API calls by provider, mode and result",
		},
		[]string{"provider", "mode", "result"},
	)

	StreamFragments = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "careconnect_stream_fragments_total",
			Help: "Text fragments relayed to streaming clients",
		},
	)

	// Conversation store
	HistoryStoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careconnect_history_store_errors_total",
			Help: "Swallowed conversation store failures",
		},
		[]string{"op"},
	)
)
