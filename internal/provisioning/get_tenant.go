package provisioning

import (
	"context"
	"log/slog"
	"time"
)

// GetTenantUseCase reads one tenant together with its default siblings.
type GetTenantUseCase struct {
	deps Deps
}

func NewGetTenantUseCase(deps Deps) *GetTenantUseCase {
	return &GetTenantUseCase{deps: deps}
}

func (u *GetTenantUseCase) Execute(ctx context.Context, tenantID string) Result[*GetTenantResponse] {
	start := time.Now()
	res := u.run(ctx, tenantID)
	observe("get_tenant", start, res.Success)
	return res
}

func (u *GetTenantUseCase) run(ctx context.Context, tenantID string) Result[*GetTenantResponse] {
	if !ValidTenantID(tenantID) {
		return fail[*GetTenantResponse](ErrInvalidTenantID)
	}

	store, err := u.deps.defaultStore(ctx)
	if err != nil {
		slog.Error("getting tenant: resolving store", "tenantId", tenantID, "error", err)
		return fail[*GetTenantResponse]("Failed to get tenant")
	}

	tenant, err := store.Tenants.FindByID(ctx, nil, tenantID)
	if err != nil {
		slog.Error("getting tenant", "tenantId", tenantID, "error", err)
		return fail[*GetTenantResponse]("Failed to get tenant")
	}
	if tenant == nil {
		return fail[*GetTenantResponse](ErrTenantNotFound)
	}

	customer, err := store.Customers.FindDefaultByTenant(ctx, tenantID)
	if err != nil {
		slog.Error("getting tenant: default customer", "tenantId", tenantID, "error", err)
		return fail[*GetTenantResponse]("Failed to get tenant")
	}
	warehouse, err := store.Warehouses.FindDefaultByTenant(ctx, tenantID)
	if err != nil {
		slog.Error("getting tenant: default warehouse", "tenantId", tenantID, "error", err)
		return fail[*GetTenantResponse]("Failed to get tenant")
	}
	superAdmin, err := store.Users.FindDefaultByTenant(ctx, tenantID)
	if err != nil {
		slog.Error("getting tenant: default super admin", "tenantId", tenantID, "error", err)
		return fail[*GetTenantResponse]("Failed to get tenant")
	}

	return ok(&GetTenantResponse{
		Tenant:     tenant,
		Customer:   customer,
		Warehouse:  warehouse,
		SuperAdmin: superAdmin.Sanitized(),
	})
}
