package provisioning

import (
	"context"
	"log/slog"
	"time"

	"github.com/wms-platform/tenants-admin/internal/audit"
	"github.com/wms-platform/tenants-admin/internal/db/models"
)

// UpdateTenantUseCase applies a partial update to one tenant. The before
// snapshot is read inside the same transaction that writes the update, so the
// recorded field delta can never mix in a concurrent writer's changes.
type UpdateTenantUseCase struct {
	deps Deps
}

func NewUpdateTenantUseCase(deps Deps) *UpdateTenantUseCase {
	return &UpdateTenantUseCase{deps: deps}
}

func (u *UpdateTenantUseCase) Execute(ctx context.Context, req UpdateTenantRequest) Result[*models.Tenant] {
	start := time.Now()
	res := u.run(ctx, req)
	observe("update_tenant", start, res.Success)
	return res
}

func (u *UpdateTenantUseCase) run(ctx context.Context, req UpdateTenantRequest) Result[*models.Tenant] {
	if !ValidTenantID(req.ID) {
		return fail[*models.Tenant](ErrInvalidTenantID)
	}

	store, err := u.deps.defaultStore(ctx)
	if err != nil {
		slog.Error("updating tenant: resolving store", "tenantId", req.ID, "error", err)
		return fail[*models.Tenant]("Failed to update tenant")
	}

	txCtx, cancel := context.WithTimeout(ctx, u.deps.txTimeout())
	defer cancel()

	tx, err := store.DB.BeginTxx(txCtx, nil)
	if err != nil {
		slog.Error("updating tenant: begin transaction", "tenantId", req.ID, "error", err)
		return fail[*models.Tenant]("Failed to update tenant")
	}
	defer func() { _ = tx.Rollback() }()

	tenant, err := store.Tenants.FindByID(txCtx, tx, req.ID)
	if err != nil {
		slog.Error("updating tenant: loading current row", "tenantId", req.ID, "error", err)
		return fail[*models.Tenant]("Failed to update tenant")
	}
	if tenant == nil {
		return fail[*models.Tenant](ErrTenantNotFound)
	}

	before := snapshot(tenant)
	applyTenantUpdate(tenant, req.Update)
	if err = store.Tenants.UpdateByID(txCtx, tx, tenant); err != nil {
		slog.Error("updating tenant", "tenantId", req.ID, "error", err)
		return fail[*models.Tenant]("Failed to update tenant")
	}
	after := snapshot(tenant)

	entry := &models.AuditLog{
		TenantID:   req.ID,
		Action:     models.AuditActionUpdate,
		EntityType: "Tenant",
		EntityID:   req.ID,
		Changes: &models.AuditChanges{
			Before:   before,
			After:    after,
			Modified: audit.Diff(before, after),
		},
		Metadata: map[string]interface{}{"source": "tenant-update"},
	}
	if req.PerformedBy != nil {
		entry.PerformedBy = *req.PerformedBy
	}
	if err = u.deps.Audit.LogAction(txCtx, tx, entry); err != nil {
		slog.Error("updating tenant: audit entry", "tenantId", req.ID, "error", err)
		return fail[*models.Tenant]("Failed to update tenant")
	}

	if err = tx.Commit(); err != nil {
		slog.Error("updating tenant: commit", "tenantId", req.ID, "error", err)
		return fail[*models.Tenant]("Failed to update tenant")
	}

	u.deps.Audit.Ship(entry)

	res := ok(tenant)
	res.Message = "Tenant updated successfully"
	return res
}
