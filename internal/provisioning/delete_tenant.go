package provisioning

import (
	"context"
	"log/slog"
	"time"

	"github.com/wms-platform/tenants-admin/internal/db/models"
)

// DeleteTenantUseCase tears a tenant down completely: every sibling entity,
// the audit trail, and finally the tenant row itself, in one transaction.
// Teardown leaves no trace, including no audit entry of its own.
type DeleteTenantUseCase struct {
	deps Deps
}

func NewDeleteTenantUseCase(deps Deps) *DeleteTenantUseCase {
	return &DeleteTenantUseCase{deps: deps}
}

func (u *DeleteTenantUseCase) Execute(ctx context.Context, tenantID string) Result[*models.Tenant] {
	start := time.Now()
	res := u.run(ctx, tenantID)
	observe("delete_tenant", start, res.Success)
	return res
}

func (u *DeleteTenantUseCase) run(ctx context.Context, tenantID string) Result[*models.Tenant] {
	if !ValidTenantID(tenantID) {
		return fail[*models.Tenant](ErrInvalidTenantID)
	}

	store, err := u.deps.defaultStore(ctx)
	if err != nil {
		slog.Error("deleting tenant: resolving store", "tenantId", tenantID, "error", err)
		return fail[*models.Tenant]("Failed to delete tenant")
	}

	txCtx, cancel := context.WithTimeout(ctx, u.deps.txTimeout())
	defer cancel()

	tx, err := store.DB.BeginTxx(txCtx, nil)
	if err != nil {
		slog.Error("deleting tenant: begin transaction", "tenantId", tenantID, "error", err)
		return fail[*models.Tenant]("Failed to delete tenant")
	}
	defer func() { _ = tx.Rollback() }()

	tenant, err := store.Tenants.FindByID(txCtx, tx, tenantID)
	if err != nil {
		slog.Error("deleting tenant: loading row", "tenantId", tenantID, "error", err)
		return fail[*models.Tenant]("Failed to delete tenant")
	}
	if tenant == nil {
		return fail[*models.Tenant](ErrTenantNotFound)
	}

	if err = store.Customers.DeleteByTenant(txCtx, tx, tenantID); err != nil {
		slog.Error("deleting tenant: customers", "tenantId", tenantID, "error", err)
		return fail[*models.Tenant]("Failed to delete tenant")
	}
	if err = store.Warehouses.DeleteByTenant(txCtx, tx, tenantID); err != nil {
		slog.Error("deleting tenant: warehouses", "tenantId", tenantID, "error", err)
		return fail[*models.Tenant]("Failed to delete tenant")
	}
	if err = store.Users.DeleteByTenant(txCtx, tx, tenantID); err != nil {
		slog.Error("deleting tenant: users", "tenantId", tenantID, "error", err)
		return fail[*models.Tenant]("Failed to delete tenant")
	}
	if err = store.EntityTypes.DeleteByTenant(txCtx, tx, tenantID); err != nil {
		slog.Error("deleting tenant: entity types", "tenantId", tenantID, "error", err)
		return fail[*models.Tenant]("Failed to delete tenant")
	}
	if err = u.deps.Audit.DeleteByTenant(txCtx, tx, tenantID); err != nil {
		slog.Error("deleting tenant: audit trail", "tenantId", tenantID, "error", err)
		return fail[*models.Tenant]("Failed to delete tenant")
	}
	if err = store.Tenants.DeleteByID(txCtx, tx, tenantID); err != nil {
		slog.Error("deleting tenant", "tenantId", tenantID, "error", err)
		return fail[*models.Tenant]("Failed to delete tenant")
	}

	if err = tx.Commit(); err != nil {
		slog.Error("deleting tenant: commit", "tenantId", tenantID, "error", err)
		return fail[*models.Tenant]("Failed to delete tenant")
	}

	return okMessage[*models.Tenant]("Tenant deleted successfully")
}
