package provisioning

import (
	"context"
	"log/slog"
	"time"

	"github.com/wms-platform/tenants-admin/internal/auth"
	"github.com/wms-platform/tenants-admin/internal/db/models"
)

// CreateTenantUseCase provisions a tenant together with its optional initial
// siblings in a single transaction. Sibling rows are written before the tenant
// row so a failed run never leaves a registered tenant without its defaults.
type CreateTenantUseCase struct {
	deps Deps
}

func NewCreateTenantUseCase(deps Deps) *CreateTenantUseCase {
	return &CreateTenantUseCase{deps: deps}
}

func (u *CreateTenantUseCase) Execute(ctx context.Context, req CreateTenantRequest) Result[*CreateTenantResponse] {
	start := time.Now()
	res := u.run(ctx, req)
	observe("create_tenant", start, res.Success)
	return res
}

func (u *CreateTenantUseCase) run(ctx context.Context, req CreateTenantRequest) Result[*CreateTenantResponse] {
	store, err := u.deps.defaultStore(ctx)
	if err != nil {
		slog.Error("creating tenant: resolving store", "error", err)
		return fail[*CreateTenantResponse]("Failed to create tenant")
	}

	txCtx, cancel := context.WithTimeout(ctx, u.deps.txTimeout())
	defer cancel()

	tx, err := store.DB.BeginTxx(txCtx, nil)
	if err != nil {
		slog.Error("creating tenant: begin transaction", "error", err)
		return fail[*CreateTenantResponse]("Failed to create tenant")
	}
	defer func() { _ = tx.Rollback() }()

	tenantID := GenerateTenantID()

	var warehouse *models.Warehouse
	if req.Warehouse != nil {
		warehouse, err = warehouseFromPayload(tenantID, req.Warehouse)
		if err == nil {
			err = store.Warehouses.Create(txCtx, tx, warehouse)
		}
		if err != nil {
			slog.Error("creating tenant: warehouse", "tenantId", tenantID, "error", err)
			return fail[*CreateTenantResponse]("Failed to create tenant")
		}
	}

	var customer *models.Customer
	if req.Customer != nil {
		customer, err = customerFromPayload(tenantID, req.Customer)
		if err == nil {
			err = store.Customers.Create(txCtx, tx, customer)
		}
		if err != nil {
			slog.Error("creating tenant: customer", "tenantId", tenantID, "error", err)
			return fail[*CreateTenantResponse]("Failed to create tenant")
		}
	}

	var superAdmin *models.User
	if req.SuperAdmin != nil {
		hashed := ""
		if req.SuperAdmin.Password != "" {
			hashed, err = auth.HashPassword(req.SuperAdmin.Password, u.deps.bcryptCost())
			if err != nil {
				slog.Error("creating tenant: hashing password", "tenantId", tenantID, "error", err)
				return fail[*CreateTenantResponse]("Failed to create tenant")
			}
		}
		superAdmin = superAdminFromPayload(tenantID, req.SuperAdmin, hashed)
		if err = store.Users.Create(txCtx, tx, superAdmin); err != nil {
			slog.Error("creating tenant: super admin", "tenantId", tenantID, "error", err)
			return fail[*CreateTenantResponse]("Failed to create tenant")
		}

		// The default roles only make sense once there is an account to
		// hold them.
		entityTypes, seedErr := DefaultEntityTypes(tenantID)
		if seedErr == nil {
			seedErr = store.EntityTypes.CreateBatch(txCtx, tx, entityTypes)
		}
		if seedErr != nil {
			slog.Error("creating tenant: entity types", "tenantId", tenantID, "error", seedErr)
			return fail[*CreateTenantResponse]("Failed to create tenant")
		}
	}

	tenant := ApplyTenantDefaults(req.Tenant)
	tenant.ID = tenantID
	if err = store.Tenants.Create(txCtx, tx, tenant); err != nil {
		slog.Error("creating tenant", "tenantId", tenantID, "error", err)
		return fail[*CreateTenantResponse]("Failed to create tenant")
	}

	entry := &models.AuditLog{
		TenantID:   tenantID,
		Action:     models.AuditActionCreate,
		EntityType: "Tenant",
		EntityID:   tenantID,
		Changes:    &models.AuditChanges{After: snapshot(tenant)},
		Metadata:   map[string]interface{}{"source": "tenant-creation"},
	}
	if req.PerformedBy != nil {
		entry.PerformedBy = *req.PerformedBy
	}
	if err = u.deps.Audit.LogAction(txCtx, tx, entry); err != nil {
		slog.Error("creating tenant: audit entry", "tenantId", tenantID, "error", err)
		return fail[*CreateTenantResponse]("Failed to create tenant")
	}

	if err = tx.Commit(); err != nil {
		slog.Error("creating tenant: commit", "tenantId", tenantID, "error", err)
		return fail[*CreateTenantResponse]("Failed to create tenant")
	}

	u.deps.Audit.Ship(entry)

	return ok(&CreateTenantResponse{
		TenantID:   tenantID,
		Tenant:     tenant,
		Customer:   customer,
		Warehouse:  warehouse,
		SuperAdmin: superAdmin.Sanitized(),
	})
}
