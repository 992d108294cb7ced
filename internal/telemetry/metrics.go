// Package telemetry provides application-level observability for the tenants-admin service.
//
// All metrics are registered against the default Prometheus registry and are
// served on the side-channel HTTP server started by main.go:
//
//	GET http(s)://<host>:<TNA_TELEMETRY_METRICS_PROMETHEUS_PORT>/metrics
//
// Default port: 9090. The endpoint is not served by the Gin router, which keeps
// the scrape path off the public ingress and clear of rate-limiting middleware.
//
// HTTP metrics use c.FullPath() (route template such as /api/v1/tenants/:id)
// rather than the raw request URL to prevent unbounded label cardinality from
// user-supplied path segments such as tenant identifiers.
package telemetry

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics — labelled by method, route template, and status code.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed, by method, route template, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, by method and route template.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)
)

// Provisioning metrics — recorded by the tenant provisioning use cases.
//
// ProvisioningTotal counts complete provisioning attempts by use case
// ("create", "create_direct", "delete", "setup_warehouse", ...) and outcome
// ("success" / "failure"). The duration histogram shares the use_case label.
//
// Example PromQL queries:
//   - Failure rate:  sum(rate(tenant_provisioning_total{outcome="failure"}[1h])) / sum(rate(tenant_provisioning_total[1h]))
//   - p95 duration:  histogram_quantile(0.95, rate(tenant_provisioning_duration_seconds_bucket[1h]))
var (
	ProvisioningTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenant_provisioning_total",
			Help: "Total number of tenant provisioning operations, by use case and outcome.",
		},
		[]string{"use_case", "outcome"},
	)

	ProvisioningDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tenant_provisioning_duration_seconds",
			Help:    "Duration of tenant provisioning operations, by use case.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"use_case"},
	)
)

// AuditEntriesTotal counts audit log entries written, by action kind
// (CREATE, UPDATE, DELETE, SETUP). A stalled counter while provisioning
// succeeds indicates the audit pipeline is misconfigured.
var AuditEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "audit_entries_total",
		Help: "Total number of audit log entries written, by action kind.",
	},
	[]string{"action"},
)

// RegionalConnectionsOpen tracks the number of live regional database
// connections held by the connection router, by canonical region key.
// The value for a given region is 0 or 1 for the process lifetime.
var RegionalConnectionsOpen = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "regional_connections_open",
		Help: "Number of live regional database connections held by the router, by region.",
	},
	[]string{"region"},
)

// DBOpenConnections is a Gauge that tracks the number of open connections currently
// held by the sql.DB connection pool. It is sampled every 30 seconds by
// StartDBStatsCollector rather than per-request to avoid the overhead of sql.DB.Stats().
var DBOpenConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "db_open_connections",
		Help: "Current number of open database connections in the pool.",
	},
)

// StartDBStatsCollector launches a background goroutine that samples sql.DB connection
// pool statistics every 30 seconds and updates the DBOpenConnections gauge.
// The goroutine exits cleanly when the database becomes unreachable (db.Ping fails),
// which happens automatically when the application shuts down and defers db.Close().
//
// Call this once, immediately after db.Connect() succeeds in main.go:
//
//	telemetry.StartDBStatsCollector(database)
func StartDBStatsCollector(db *sql.DB) {
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if err := db.Ping(); err != nil {
				slog.Warn("db stats collector: database unreachable, stopping collector", "error", err)
				return
			}
			DBOpenConnections.Set(float64(db.Stats().OpenConnections))
		}
	}()
}
