// Package models - audit_log.go defines the AuditLog model, one immutable record of
// a mutation applied to a tenant. Entries are append-only: never updated, deleted
// only as part of full tenant teardown.
package models

import "time"

// Audit action kinds
const (
	AuditActionCreate     = "CREATE"
	AuditActionUpdate     = "UPDATE"
	AuditActionDelete     = "DELETE"
	AuditActionActivate   = "ACTIVATE"
	AuditActionDeactivate = "DEACTIVATE"
	AuditActionSetup      = "SETUP"
)

// AuditActor identifies who performed a mutation. UserID and Email are optional;
// system-initiated mutations carry Username "system" and nothing else.
type AuditActor struct {
	UserID   string `json:"userId,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// AuditChange records the before/after values of one field path
type AuditChange struct {
	From interface{} `json:"from"`
	To   interface{} `json:"to"`
}

// AuditChanges carries the full before/after snapshots plus the computed
// field-level delta. Before/After may be nil for pure creations/deletions.
type AuditChanges struct {
	Before   map[string]interface{} `json:"before,omitempty"`
	After    map[string]interface{} `json:"after,omitempty"`
	Modified map[string]AuditChange `json:"modified,omitempty"`
}

// AuditLog represents an audit log entry for one mutation applied to a tenant
type AuditLog struct {
	ID          string                 `json:"id"`
	TenantID    string                 `json:"tenantId"`
	Action      string                 `json:"action"`
	EntityType  string                 `json:"entityType"`
	EntityID    string                 `json:"entityId"`
	PerformedBy AuditActor             `json:"performedBy"`
	Timestamp   time.Time              `json:"timestamp"`
	Changes     *AuditChanges          `json:"changes,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}
