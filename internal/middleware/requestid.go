// Package middleware provides the Gin HTTP middleware for the tenants-admin
// service. Everything here is registered in internal/api/router.go ahead of the
// route handlers so every request is covered regardless of handler.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is the HTTP header used to propagate the request identifier.
	RequestIDHeader = "X-Request-ID"

	// RequestIDKey is the gin.Context key under which the request ID is stored so
	// handlers and other middleware can read it without parsing headers.
	RequestIDKey = "request_id"
)

// RequestIDMiddleware ensures every request carries a unique identifier. An
// inbound X-Request-ID (set by a gateway or caller) is reused unchanged;
// otherwise a fresh UUID is generated. The ID is stored in the gin context and
// echoed back in the response header so callers can correlate their request
// with server-side log entries.
//
// Register this as early as possible so all downstream logging includes the ID.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()
	}
}
