// Package models - tenant.go defines the Tenant model representing one onboarded
// organization on the warehouse-management platform, identified by a unique
// subdomain-derived identifier that every sibling entity references.
package models

import "time"

// TenantModule represents one platform module toggle for a tenant
type TenantModule struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// Tenant represents a provisioned customer organization
type Tenant struct {
	ID                 string                 `json:"id"`
	Name               string                 `json:"name"`
	Subdomain          string                 `json:"subdomain"`
	Active             bool                   `json:"active"`
	APIGateway         string                 `json:"apiGateway,omitempty"`
	CubeService        string                 `json:"cubeService,omitempty"`
	SocketService      string                 `json:"socketService,omitempty"`
	EnabledSimulations bool                   `json:"enabledSimulations"`
	TypeOfCustomer     []string               `json:"typeOfCustomer"`
	Profile            map[string]interface{} `json:"profile,omitempty"`
	Features           map[string]interface{} `json:"features"`
	Modules            []TenantModule         `json:"modules"`
	Settings           map[string]interface{} `json:"settings"`
	Integrations       []string               `json:"integrations"`
	CreatedAt          time.Time              `json:"createdAt"`
	UpdatedAt          time.Time              `json:"updatedAt"`
}
