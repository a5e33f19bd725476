// Package metrics exposes the Prometheus instrumentation shared across
// the HTTP layer and background workers.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors
type Metrics struct {
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPActiveConnections *prometheus.GaugeVec

	DatabaseQueriesTotal  *prometheus.CounterVec
	DatabaseQueryDuration *prometheus.HistogramVec

	RateLimitExceededTotal *prometheus.CounterVec

	WebSocketConnections prometheus.Gauge
	NotificationsCreated *prometheus.CounterVec
	PostsCreated         prometheus.Counter
	ReactionsApplied     *prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Get returns the singleton metrics instance, registering collectors on
// first use.
func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "ringconnect_http_requests_total",
				Help: "Total HTTP requests by method, path and status",
			}, []string{"method", "path", "status"}),

			HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "ringconnect_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			}, []string{"method", "path", "status"}),

			HTTPActiveConnections: promauto.NewGaugeVec(prometheus.GaugeOpts{
				Name: "ringconnect_http_active_connections",
				Help: "In-flight HTTP requests",
			}, []string{"method", "path"}),

			DatabaseQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "ringconnect_database_queries_total",
				Help: "Database queries by operation, table and status",
			}, []string{"operation", "table", "status"}),

			DatabaseQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "ringconnect_database_query_duration_seconds",
				Help:    "Database query latency",
				Buckets: prometheus.DefBuckets,
			}, []string{"operation", "table"}),

			RateLimitExceededTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "ringconnect_rate_limit_exceeded_total",
				Help: "Requests rejected by the rate limiter",
			}, []string{"path", "method"}),

			WebSocketConnections: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "ringconnect_websocket_connections",
				Help: "Active WebSocket connections",
			}),

			NotificationsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "ringconnect_notifications_created_total",
				Help: "Notifications created by type",
			}, []string{"type"}),

			PostsCreated: promauto.NewCounter(prometheus.CounterOpts{
				Name: "ringconnect_posts_created_total",
				Help: "Feed posts created",
			}),

			ReactionsApplied: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "ringconnect_reactions_applied_total",
				Help: "Reaction toggles by outcome",
			}, []string{"outcome"}),
		}
	})
	return instance
}
