// Package models - entity_type.go defines the EntityType model, a named permission
// bundle scoped to a tenant (e.g. ADMIN, ASSOCIATE). The nested permission tree
// lives in Attributes as opaque configuration data.
package models

import "time"

// Entity type names that must exist before onboarding counts as complete.
const (
	EntityTypeAdmin     = "ADMIN"
	EntityTypeAssociate = "ASSOCIATE"
)

// EntityType represents a role/permission-bundle definition belonging to a tenant
type EntityType struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	EntityParent string                 `json:"entityParent,omitempty"`
	TenantID     string                 `json:"tenant"`
	Attributes   map[string]interface{} `json:"attributes"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}
