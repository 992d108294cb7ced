// requests.go defines the request payloads the use cases accept. Optional scalar
// fields use pointers so "absent" and "zero" stay distinguishable; defaulting
// happens in one place (defaults.go), never in handlers.
package provisioning

import (
	"github.com/wms-platform/tenants-admin/internal/db/models"
)

// TenantPayload carries the caller-supplied tenant fields for creation and
// update. Absent fields fall back to platform defaults on create and leave the
// stored value untouched on update.
type TenantPayload struct {
	Name               string                 `json:"name"`
	Subdomain          string                 `json:"subdomain"`
	Active             *bool                  `json:"active,omitempty"`
	APIGateway         string                 `json:"apiGateway,omitempty"`
	CubeService        string                 `json:"cubeService,omitempty"`
	SocketService      string                 `json:"socketService,omitempty"`
	EnabledSimulations *bool                  `json:"enabledSimulations,omitempty"`
	TypeOfCustomer     []string               `json:"typeOfCustomer,omitempty"`
	Profile            map[string]interface{} `json:"profile,omitempty"`
	Features           map[string]interface{} `json:"features,omitempty"`
	Modules            []models.TenantModule  `json:"modules,omitempty"`
	Settings           map[string]interface{} `json:"settings,omitempty"`
	Integrations       []string               `json:"integrations,omitempty"`
}

// CustomerPayload is the nested-create customer section
type CustomerPayload struct {
	CompanyName string `json:"companyName"`
}

// WarehouseAddressPayload is the caller-facing address shape of the nested
// create. Field names follow the onboarding form, not the stored model.
type WarehouseAddressPayload struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

// WarehousePayload is the nested-create warehouse section
type WarehousePayload struct {
	Name    string                   `json:"name"`
	Code    string                   `json:"code"`
	Address *WarehouseAddressPayload `json:"address,omitempty"`
}

// SuperAdminPayload is the nested-create super-admin section. A supplied
// password is hashed before storage; an absent one falls back to the platform
// default credential.
type SuperAdminPayload struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Email    string `json:"email,omitempty"`
}

// CreateTenantRequest is the nested provisioning request: the tenant plus its
// optional initial siblings, created together in one transaction.
type CreateTenantRequest struct {
	Tenant      TenantPayload      `json:"tenant"`
	Customer    *CustomerPayload   `json:"customer,omitempty"`
	Warehouse   *WarehousePayload  `json:"warehouse,omitempty"`
	SuperAdmin  *SuperAdminPayload `json:"superAdmin,omitempty"`
	PerformedBy *models.AuditActor `json:"performedBy,omitempty"`
}

// CreateTenantResponse reports everything the nested create produced. The
// super admin is returned sanitized.
type CreateTenantResponse struct {
	TenantID   string            `json:"tenantId"`
	Tenant     *models.Tenant    `json:"tenant"`
	Customer   *models.Customer  `json:"customer"`
	Warehouse  *models.Warehouse `json:"warehouse"`
	SuperAdmin *models.User      `json:"superAdmin"`
}

// CreateTenantDirectRequest creates just the tenant row with defaulting and a
// CREATE audit entry, no siblings.
type CreateTenantDirectRequest struct {
	Tenant      TenantPayload      `json:"tenant"`
	PerformedBy *models.AuditActor `json:"performedBy,omitempty"`
}

// UpdateTenantRequest applies a partial update to one tenant
type UpdateTenantRequest struct {
	ID          string             `json:"id"`
	Update      TenantPayload      `json:"update"`
	PerformedBy *models.AuditActor `json:"performedBy,omitempty"`
}

// GetTenantResponse is the tenant plus its default siblings
type GetTenantResponse struct {
	Tenant     *models.Tenant    `json:"tenant"`
	Customer   *models.Customer  `json:"customer"`
	Warehouse  *models.Warehouse `json:"warehouse"`
	SuperAdmin *models.User      `json:"superAdmin"`
}

// ListTenantsRequest is a paginated, optionally filtered tenant listing
type ListTenantsRequest struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Search string `json:"search,omitempty"`
	Active *bool  `json:"active,omitempty"`
}

// Pagination describes one page of a listing
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ListTenantsResponse is one page of tenants
type ListTenantsResponse struct {
	Items      []*models.Tenant `json:"items"`
	Pagination Pagination       `json:"pagination"`
}

// OnboardingProgress reports which default siblings exist for a tenant.
// Complete means default customer, warehouse and super admin all exist and the
// entity types include both ADMIN and ASSOCIATE.
type OnboardingProgress struct {
	Customer    *models.Customer     `json:"customer"`
	Warehouse   *models.Warehouse    `json:"warehouse"`
	SuperAdmin  *models.User         `json:"superAdmin"`
	EntityTypes []*models.EntityType `json:"entityTypes"`
	IsComplete  bool                 `json:"isComplete"`
}

// SetupRequest seeds one default sibling for an existing tenant, optionally in
// a specific deployment region.
type SetupRequest struct {
	TenantID    string             `json:"tenantId"`
	Region      string             `json:"region,omitempty"`
	PerformedBy *models.AuditActor `json:"performedBy,omitempty"`
}

// SetupEntityTypesResponse returns the two seeded roles
type SetupEntityTypesResponse struct {
	AdminRole     *models.EntityType `json:"adminRole"`
	AssociateRole *models.EntityType `json:"associateRole"`
}
