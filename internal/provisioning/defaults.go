// defaults.go holds tenant identifier generation, payload defaulting, and the
// snapshot helper the audit diffs are computed from.
package provisioning

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/wms-platform/tenants-admin/internal/db/models"
)

var tenantIDPattern = regexp.MustCompile(`^tenant_[0-9a-f]{16}$`)

// GenerateTenantID returns a fresh tenant identifier: "tenant_" followed by the
// first 16 hex characters of a random UUID.
func GenerateTenantID() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "tenant_" + raw[:16]
}

// ValidTenantID reports whether id has the canonical tenant identifier shape.
func ValidTenantID(id string) bool {
	return tenantIDPattern.MatchString(id)
}

// ApplyTenantDefaults builds the tenant row for a create request: platform
// defaults merged with the caller's payload, caller winning per top-level
// field. New tenants always start inactive; activation is a separate step
// after provisioning, so a payload Active flag is ignored here and only
// honored on update.
func ApplyTenantDefaults(payload TenantPayload) *models.Tenant {
	tenant := &models.Tenant{
		Name:               payload.Name,
		Subdomain:          payload.Subdomain,
		Active:             false,
		APIGateway:         payload.APIGateway,
		CubeService:        payload.CubeService,
		SocketService:      payload.SocketService,
		EnabledSimulations: true,
		TypeOfCustomer:     payload.TypeOfCustomer,
		Profile:            payload.Profile,
		Features:           models.MergeShallow(models.DefaultFeatures(), payload.Features),
		Modules:            payload.Modules,
		Settings:           models.MergeShallow(models.DefaultSettings(), payload.Settings),
		Integrations:       payload.Integrations,
	}

	if payload.EnabledSimulations != nil {
		tenant.EnabledSimulations = *payload.EnabledSimulations
	}
	if len(tenant.TypeOfCustomer) == 0 {
		tenant.TypeOfCustomer = models.DefaultTypeOfCustomer()
	}
	if len(tenant.Modules) == 0 {
		tenant.Modules = models.DefaultModules()
	}
	if tenant.Integrations == nil {
		tenant.Integrations = []string{}
	}

	return tenant
}

// applyTenantUpdate lays the non-absent payload fields over an existing tenant.
// Strings count as absent when empty; maps, slices and pointers when nil.
func applyTenantUpdate(tenant *models.Tenant, update TenantPayload) {
	if update.Name != "" {
		tenant.Name = update.Name
	}
	if update.Subdomain != "" {
		tenant.Subdomain = update.Subdomain
	}
	if update.Active != nil {
		tenant.Active = *update.Active
	}
	if update.APIGateway != "" {
		tenant.APIGateway = update.APIGateway
	}
	if update.CubeService != "" {
		tenant.CubeService = update.CubeService
	}
	if update.SocketService != "" {
		tenant.SocketService = update.SocketService
	}
	if update.EnabledSimulations != nil {
		tenant.EnabledSimulations = *update.EnabledSimulations
	}
	if update.TypeOfCustomer != nil {
		tenant.TypeOfCustomer = update.TypeOfCustomer
	}
	if update.Profile != nil {
		tenant.Profile = update.Profile
	}
	if update.Features != nil {
		tenant.Features = models.MergeShallow(tenant.Features, update.Features)
	}
	if update.Modules != nil {
		tenant.Modules = update.Modules
	}
	if update.Settings != nil {
		tenant.Settings = models.MergeShallow(tenant.Settings, update.Settings)
	}
	if update.Integrations != nil {
		tenant.Integrations = update.Integrations
	}
}

// snapshot renders an entity as the generic map shape the audit diff engine
// works on, using the same JSON field names callers see.
func snapshot(v interface{}) map[string]interface{} {
	raw, err := json.Marshal(v)
	if err != nil || string(raw) == "null" {
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	// Timestamps churn on every write and would drown the real delta.
	delete(out, "createdAt")
	delete(out, "updatedAt")
	return out
}
