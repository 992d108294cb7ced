// Package models - warehouse.go defines the Warehouse model, the physical location
// record scoped to a tenant.
package models

import "time"

// WarehouseAddress holds the contact and postal details of a warehouse
type WarehouseAddress struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Zip     string `json:"zip"`
	City    string `json:"city"`
	Country string `json:"country"`
	Line1   string `json:"line1"`
}

// Warehouse represents a warehouse record belonging to a tenant
type Warehouse struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Code               string            `json:"code"`
	TenantID           string            `json:"tenant"`
	IsDefault          bool              `json:"isDefault"`
	Active             bool              `json:"active"`
	Location           string            `json:"location,omitempty"`
	SplitOrdersEnabled *bool             `json:"splitOrdersEnabled"`
	TypeOfWarehouse    []string          `json:"typeOfWarehouse"`
	Address            *WarehouseAddress `json:"address,omitempty"`
	StorageTypes       []string          `json:"storageTypes"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}
