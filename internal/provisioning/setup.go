// setup.go holds the single-entity seeders: each one (re)creates one default
// sibling for an already registered tenant, optionally in a specific deployment
// region. The tenant registry and the audit trail always live in the home
// region; only the seeded entity itself goes to the regional store.
package provisioning

import (
	"context"
	"log/slog"
	"time"

	"github.com/wms-platform/tenants-admin/internal/db/models"
	"github.com/wms-platform/tenants-admin/internal/db/repositories"
)

// setupTarget validates the request, confirms the tenant is registered in the
// home region, and resolves the regional repositories the seeded entity should
// land in. A non-empty errMsg carries the caller-safe failure string.
func setupTarget(ctx context.Context, deps Deps, req SetupRequest, label string) (*repositories.Set, string) {
	if !ValidTenantID(req.TenantID) {
		return nil, ErrInvalidTenantID
	}

	home, err := deps.defaultStore(ctx)
	if err != nil {
		slog.Error(label+": resolving home store", "tenantId", req.TenantID, "error", err)
		return nil, "Failed to " + label
	}

	tenant, err := home.Tenants.FindByID(ctx, nil, req.TenantID)
	if err != nil {
		slog.Error(label+": loading tenant", "tenantId", req.TenantID, "error", err)
		return nil, "Failed to " + label
	}
	if tenant == nil {
		return nil, ErrTenantNotFound
	}

	regional, err := deps.Router.Repositories(ctx, req.Region)
	if err != nil {
		slog.Error(label+": resolving region", "tenantId", req.TenantID, "region", req.Region, "error", err)
		return nil, "Failed to " + label
	}
	return regional, ""
}

// logSetup records and ships the SETUP audit entry for one seeded entity.
// The entry goes to the home region outside any transaction; a failed write is
// logged but does not undo the seed.
func logSetup(ctx context.Context, deps Deps, req SetupRequest, entityType, entityID, source string, after map[string]interface{}) {
	entry := &models.AuditLog{
		TenantID:   req.TenantID,
		Action:     models.AuditActionSetup,
		EntityType: entityType,
		EntityID:   entityID,
		Changes:    &models.AuditChanges{After: after},
		Metadata:   map[string]interface{}{"source": source},
	}
	if req.Region != "" {
		entry.Metadata["region"] = req.Region
	}
	if req.PerformedBy != nil {
		entry.PerformedBy = *req.PerformedBy
	}
	if err := deps.Audit.LogAction(ctx, nil, entry); err != nil {
		slog.Error("recording setup audit entry", "tenantId", req.TenantID, "entityType", entityType, "error", err)
		return
	}
	deps.Audit.Ship(entry)
}

// ---------------------------------------------------------------------------
// SetupDefaultWarehouseUseCase
// ---------------------------------------------------------------------------

// SetupDefaultWarehouseUseCase seeds the default warehouse for a tenant.
type SetupDefaultWarehouseUseCase struct {
	deps Deps
}

func NewSetupDefaultWarehouseUseCase(deps Deps) *SetupDefaultWarehouseUseCase {
	return &SetupDefaultWarehouseUseCase{deps: deps}
}

func (u *SetupDefaultWarehouseUseCase) Execute(ctx context.Context, req SetupRequest) Result[*models.Warehouse] {
	start := time.Now()
	res := u.run(ctx, req)
	observe("setup_default_warehouse", start, res.Success)
	return res
}

func (u *SetupDefaultWarehouseUseCase) run(ctx context.Context, req SetupRequest) Result[*models.Warehouse] {
	const label = "setup default warehouse"
	store, errMsg := setupTarget(ctx, u.deps, req, label)
	if errMsg != "" {
		return fail[*models.Warehouse](errMsg)
	}

	warehouse, err := DefaultWarehouse(req.TenantID)
	if err == nil {
		err = store.Warehouses.Create(ctx, nil, warehouse)
	}
	if err != nil {
		slog.Error(label, "tenantId", req.TenantID, "region", req.Region, "error", err)
		return fail[*models.Warehouse]("Failed to setup default warehouse")
	}

	logSetup(ctx, u.deps, req, "Warehouse", warehouse.ID, "setup-default-warehouse", snapshot(warehouse))
	return ok(warehouse)
}

// ---------------------------------------------------------------------------
// SetupDefaultCustomerUseCase
// ---------------------------------------------------------------------------

// SetupDefaultCustomerUseCase seeds the default customer for a tenant.
type SetupDefaultCustomerUseCase struct {
	deps Deps
}

func NewSetupDefaultCustomerUseCase(deps Deps) *SetupDefaultCustomerUseCase {
	return &SetupDefaultCustomerUseCase{deps: deps}
}

func (u *SetupDefaultCustomerUseCase) Execute(ctx context.Context, req SetupRequest) Result[*models.Customer] {
	start := time.Now()
	res := u.run(ctx, req)
	observe("setup_default_customer", start, res.Success)
	return res
}

func (u *SetupDefaultCustomerUseCase) run(ctx context.Context, req SetupRequest) Result[*models.Customer] {
	const label = "setup default customer"
	store, errMsg := setupTarget(ctx, u.deps, req, label)
	if errMsg != "" {
		return fail[*models.Customer](errMsg)
	}

	customer, err := DefaultCustomer(req.TenantID)
	if err == nil {
		err = store.Customers.Create(ctx, nil, customer)
	}
	if err != nil {
		slog.Error(label, "tenantId", req.TenantID, "region", req.Region, "error", err)
		return fail[*models.Customer]("Failed to setup default customer")
	}

	logSetup(ctx, u.deps, req, "Customer", customer.ID, "setup-default-customer", snapshot(customer))
	return ok(customer)
}

// ---------------------------------------------------------------------------
// SetupDefaultSuperAdminUseCase
// ---------------------------------------------------------------------------

// SetupDefaultSuperAdminUseCase seeds the default super-admin account for a
// tenant. The account carries the full permission set and the bootstrap
// credential.
type SetupDefaultSuperAdminUseCase struct {
	deps Deps
}

func NewSetupDefaultSuperAdminUseCase(deps Deps) *SetupDefaultSuperAdminUseCase {
	return &SetupDefaultSuperAdminUseCase{deps: deps}
}

func (u *SetupDefaultSuperAdminUseCase) Execute(ctx context.Context, req SetupRequest) Result[*models.User] {
	start := time.Now()
	res := u.run(ctx, req)
	observe("setup_default_super_admin", start, res.Success)
	return res
}

func (u *SetupDefaultSuperAdminUseCase) run(ctx context.Context, req SetupRequest) Result[*models.User] {
	const label = "setup default super admin"
	store, errMsg := setupTarget(ctx, u.deps, req, label)
	if errMsg != "" {
		return fail[*models.User](errMsg)
	}

	superAdmin, err := DefaultSuperAdmin(req.TenantID)
	if err == nil {
		err = store.Users.Create(ctx, nil, superAdmin)
	}
	if err != nil {
		slog.Error(label, "tenantId", req.TenantID, "region", req.Region, "error", err)
		return fail[*models.User]("Failed to setup default super admin")
	}

	sanitized := superAdmin.Sanitized()
	logSetup(ctx, u.deps, req, "User", superAdmin.ID, "setup-default-super-admin", snapshot(sanitized))
	return ok(sanitized)
}

// ---------------------------------------------------------------------------
// SetupDefaultEntityTypesUseCase
// ---------------------------------------------------------------------------

// SetupDefaultEntityTypesUseCase seeds the ADMIN and ASSOCIATE role
// definitions for a tenant.
type SetupDefaultEntityTypesUseCase struct {
	deps Deps
}

func NewSetupDefaultEntityTypesUseCase(deps Deps) *SetupDefaultEntityTypesUseCase {
	return &SetupDefaultEntityTypesUseCase{deps: deps}
}

func (u *SetupDefaultEntityTypesUseCase) Execute(ctx context.Context, req SetupRequest) Result[*SetupEntityTypesResponse] {
	start := time.Now()
	res := u.run(ctx, req)
	observe("setup_default_entity_types", start, res.Success)
	return res
}

func (u *SetupDefaultEntityTypesUseCase) run(ctx context.Context, req SetupRequest) Result[*SetupEntityTypesResponse] {
	const label = "setup default entity types"
	store, errMsg := setupTarget(ctx, u.deps, req, label)
	if errMsg != "" {
		return fail[*SetupEntityTypesResponse](errMsg)
	}

	entityTypes, err := DefaultEntityTypes(req.TenantID)
	if err == nil {
		err = store.EntityTypes.CreateBatch(ctx, nil, entityTypes)
	}
	if err != nil {
		slog.Error(label, "tenantId", req.TenantID, "region", req.Region, "error", err)
		return fail[*SetupEntityTypesResponse]("Failed to setup default entity types")
	}

	resp := &SetupEntityTypesResponse{}
	for _, et := range entityTypes {
		switch et.Name {
		case models.EntityTypeAdmin:
			resp.AdminRole = et
		case models.EntityTypeAssociate:
			resp.AssociateRole = et
		}
		logSetup(ctx, u.deps, req, "EntityType", et.ID, "setup-default-entity-types", snapshot(et))
	}
	return ok(resp)
}
