// Package provisioning implements the tenant provisioning use cases: nested and
// direct tenant creation, reads, updates, teardown, onboarding progress, and the
// single-entity regional seeders. Each use case is a struct with an Execute
// method returning a Result envelope; callers branch on Success and the error
// string, never on raw database errors, which stay server-side in the logs.
package provisioning

import (
	"time"

	"github.com/wms-platform/tenants-admin/internal/telemetry"
)

// Error strings surfaced to callers. The HTTP layer maps these to status codes;
// anything else renders as an opaque failure.
const (
	ErrInvalidTenantID = "Invalid tenant ID"
	ErrTenantNotFound  = "Tenant not found"
)

// Result is the envelope every use case returns. Exactly one of Data or Error
// is meaningful: Error carries a caller-safe string when Success is false.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func okMessage[T any](message string) Result[T] {
	return Result[T]{Success: true, Message: message}
}

func fail[T any](errMsg string) Result[T] {
	return Result[T]{Success: false, Error: errMsg}
}

// observe records the outcome metrics of one use-case execution.
func observe(useCase string, start time.Time, success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	telemetry.ProvisioningTotal.WithLabelValues(useCase, outcome).Inc()
	telemetry.ProvisioningDuration.WithLabelValues(useCase).Observe(time.Since(start).Seconds())
}
