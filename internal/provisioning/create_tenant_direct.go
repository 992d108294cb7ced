package provisioning

import (
	"context"
	"log/slog"
	"time"

	"github.com/wms-platform/tenants-admin/internal/db/models"
)

// CreateTenantDirectUseCase registers a tenant row with defaulting but without
// any sibling entities. Intended for migrations and tooling that seed the
// siblings separately via the setup endpoints.
type CreateTenantDirectUseCase struct {
	deps Deps
}

func NewCreateTenantDirectUseCase(deps Deps) *CreateTenantDirectUseCase {
	return &CreateTenantDirectUseCase{deps: deps}
}

func (u *CreateTenantDirectUseCase) Execute(ctx context.Context, req CreateTenantDirectRequest) Result[*models.Tenant] {
	start := time.Now()
	res := u.run(ctx, req)
	observe("create_tenant_direct", start, res.Success)
	return res
}

func (u *CreateTenantDirectUseCase) run(ctx context.Context, req CreateTenantDirectRequest) Result[*models.Tenant] {
	store, err := u.deps.defaultStore(ctx)
	if err != nil {
		slog.Error("creating tenant directly: resolving store", "error", err)
		return fail[*models.Tenant]("Failed to create tenant")
	}

	txCtx, cancel := context.WithTimeout(ctx, u.deps.txTimeout())
	defer cancel()

	tx, err := store.DB.BeginTxx(txCtx, nil)
	if err != nil {
		slog.Error("creating tenant directly: begin transaction", "error", err)
		return fail[*models.Tenant]("Failed to create tenant")
	}
	defer func() { _ = tx.Rollback() }()

	tenant := ApplyTenantDefaults(req.Tenant)
	tenant.ID = GenerateTenantID()
	if err = store.Tenants.Create(txCtx, tx, tenant); err != nil {
		slog.Error("creating tenant directly", "tenantId", tenant.ID, "error", err)
		return fail[*models.Tenant]("Failed to create tenant")
	}

	entry := &models.AuditLog{
		TenantID:   tenant.ID,
		Action:     models.AuditActionCreate,
		EntityType: "Tenant",
		EntityID:   tenant.ID,
		Changes:    &models.AuditChanges{After: snapshot(tenant)},
		Metadata:   map[string]interface{}{"source": "direct-tenant-creation"},
	}
	if req.PerformedBy != nil {
		entry.PerformedBy = *req.PerformedBy
	}
	if err = u.deps.Audit.LogAction(txCtx, tx, entry); err != nil {
		slog.Error("creating tenant directly: audit entry", "tenantId", tenant.ID, "error", err)
		return fail[*models.Tenant]("Failed to create tenant")
	}

	if err = tx.Commit(); err != nil {
		slog.Error("creating tenant directly: commit", "tenantId", tenant.ID, "error", err)
		return fail[*models.Tenant]("Failed to create tenant")
	}

	u.deps.Audit.Ship(entry)

	return ok(tenant)
}
