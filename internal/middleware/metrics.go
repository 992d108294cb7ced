package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wms-platform/tenants-admin/internal/telemetry"
)

// MetricsMiddleware records request count and latency metrics for every request
// that passes through the router.
//
// The path label is set from c.FullPath(), the matched route template (e.g.
// /api/v1/tenants/:id) rather than the raw URL, so tenant identifiers do not
// inflate label cardinality. Requests that match no registered route use the
// literal "<no-route>".
//
// Register this after gin.Recovery() and RequestIDMiddleware so the response
// status set by error handlers is captured correctly.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "<no-route>"
		}

		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		telemetry.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		telemetry.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
