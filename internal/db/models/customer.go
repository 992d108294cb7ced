// Package models - customer.go defines the Customer model, the billing/operational
// customer record scoped to a tenant. Exactly one customer per tenant carries the
// IsDefault flag; the onboarding aggregator depends on that convention.
package models

import "time"

// Customer represents a customer record belonging to a tenant
type Customer struct {
	ID                    string                 `json:"id"`
	Name                  string                 `json:"name"`
	Code                  string                 `json:"code"`
	TenantID              string                 `json:"tenant"`
	IsDefault             bool                   `json:"isDefault"`
	Warehouses            []string               `json:"warehouses"`
	Currency              string                 `json:"currency"`
	CurrentBillingProfile *string                `json:"currentBillingProfile"`
	Active                bool                   `json:"active"`
	MetaData              map[string]interface{} `json:"metaData,omitempty"`
	Settings              map[string]interface{} `json:"settings,omitempty"`
	CreatedAt             time.Time              `json:"createdAt"`
	UpdatedAt             time.Time              `json:"updatedAt"`
}
