// seeds.go loads the default sibling entities every tenant is provisioned
// with. The canonical records live as embedded JSON assets under seeds/; the
// loaders decode a fresh copy and stamp the tenant identifier so callers can
// mutate the result freely.
package provisioning

import (
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wms-platform/tenants-admin/internal/db/models"
)

//go:embed seeds/*.json
var seedFS embed.FS

// DefaultSuperAdminPasswordHash is the bcrypt hash of the shared bootstrap
// credential applied when the caller supplies no super-admin password. The
// account is expected to rotate it on first login.
const DefaultSuperAdminPasswordHash = "$2a$10$muDypVeYS0APX0/XG/vELO/xrew5H51kB17YcgEtWT5QW7.MWwCEa"

func loadSeed(name string, v interface{}) error {
	raw, err := seedFS.ReadFile("seeds/" + name)
	if err != nil {
		return fmt.Errorf("read seed %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode seed %s: %w", name, err)
	}
	return nil
}

// DefaultCustomer returns the default customer record for a tenant.
func DefaultCustomer(tenantID string) (*models.Customer, error) {
	var c models.Customer
	if err := loadSeed("customer.json", &c); err != nil {
		return nil, err
	}
	c.TenantID = tenantID
	return &c, nil
}

// DefaultWarehouse returns the default warehouse record for a tenant.
func DefaultWarehouse(tenantID string) (*models.Warehouse, error) {
	var w models.Warehouse
	if err := loadSeed("warehouse.json", &w); err != nil {
		return nil, err
	}
	w.TenantID = tenantID
	return &w, nil
}

// DefaultSuperAdmin returns the default super-admin account for a tenant,
// carrying the bootstrap password hash and a freshly stamped last-login marker.
func DefaultSuperAdmin(tenantID string) (*models.User, error) {
	var u models.User
	if err := loadSeed("super_admin.json", &u); err != nil {
		return nil, err
	}
	u.TenantID = tenantID
	u.Password = DefaultSuperAdminPasswordHash
	if u.Meta == nil {
		u.Meta = map[string]interface{}{}
	}
	u.Meta["lastLogin"] = time.Now().UnixMilli()
	return &u, nil
}

// DefaultEntityTypes returns the ADMIN and ASSOCIATE role definitions for a
// tenant, in that order.
func DefaultEntityTypes(tenantID string) ([]*models.EntityType, error) {
	var types []*models.EntityType
	if err := loadSeed("entity_types.json", &types); err != nil {
		return nil, err
	}
	for _, et := range types {
		et.TenantID = tenantID
	}
	return types, nil
}

// customerFromPayload builds the initial customer of a nested tenant create.
// Everything except the company name is fixed; the record is always the
// tenant's default customer.
func customerFromPayload(tenantID string, payload *CustomerPayload) (*models.Customer, error) {
	customer, err := DefaultCustomer(tenantID)
	if err != nil {
		return nil, err
	}
	if payload.CompanyName != "" {
		customer.Name = payload.CompanyName
	}
	return customer, nil
}

// warehouseFromPayload builds the initial warehouse of a nested tenant create.
// The caller names it; address fields fall back to the seed values.
func warehouseFromPayload(tenantID string, payload *WarehousePayload) (*models.Warehouse, error) {
	warehouse, err := DefaultWarehouse(tenantID)
	if err != nil {
		return nil, err
	}
	warehouse.Name = payload.Name
	warehouse.Code = payload.Code
	if addr := payload.Address; addr != nil {
		if addr.ZipCode != "" {
			warehouse.Address.Zip = addr.ZipCode
		}
		if addr.City != "" {
			warehouse.Address.City = addr.City
		}
		if addr.Country != "" {
			warehouse.Address.Country = addr.Country
		}
		if addr.Street != "" {
			warehouse.Address.Line1 = addr.Street
		}
	}
	return warehouse, nil
}

// superAdminFromPayload builds the initial super admin of a nested tenant
// create. Unlike the full seed, the nested account starts with a minimal
// permission set; hashedPassword is the stored hash of the caller-supplied
// password, or empty for the bootstrap default.
func superAdminFromPayload(tenantID string, payload *SuperAdminPayload, hashedPassword string) *models.User {
	user := &models.User{
		Name:            "Super Admin",
		Username:        "super.admin",
		Email:           "admin@company.com",
		Password:        DefaultSuperAdminPasswordHash,
		Role:            "ADMIN",
		TenantID:        tenantID,
		IsDefault:       true,
		IsEmailVerified: true,
		TermsAccepted:   true,
		Activated:       true,
		Permissions: []models.UserPermission{
			{Route: "/orders", Readable: true, Writable: true},
			{Route: "/warehouses", Readable: true, Writable: true},
			{Route: "/customers", Readable: true, Writable: true},
			{Route: "/users", Readable: true, Writable: true},
		},
		PagePreferences: []models.UserPagePreference{
			{Route: "/orders", Visible: true},
			{Route: "/customers", Visible: true},
			{Route: "/users", Visible: true},
		},
		Meta: map[string]interface{}{
			"lastLogin":         time.Now().UnixMilli(),
			"lastLoginPlatform": "web",
			"lastLoginIp":       "::1",
		},
	}
	if payload.Username != "" {
		user.Username = payload.Username
	}
	if payload.Email != "" {
		user.Email = payload.Email
	}
	if hashedPassword != "" {
		user.Password = hashedPassword
	}
	return user
}
