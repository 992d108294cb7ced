package provisioning

import (
	"context"
	"log/slog"
	"time"

	"github.com/wms-platform/tenants-admin/internal/db/models"
)

// OnboardingProgressUseCase reports which default siblings a tenant has.
// Onboarding counts as complete once the default customer, warehouse and super
// admin all exist and the role set includes both ADMIN and ASSOCIATE.
type OnboardingProgressUseCase struct {
	deps Deps
}

func NewOnboardingProgressUseCase(deps Deps) *OnboardingProgressUseCase {
	return &OnboardingProgressUseCase{deps: deps}
}

func (u *OnboardingProgressUseCase) Execute(ctx context.Context, tenantID string) Result[*OnboardingProgress] {
	start := time.Now()
	res := u.run(ctx, tenantID)
	observe("onboarding_progress", start, res.Success)
	return res
}

func (u *OnboardingProgressUseCase) run(ctx context.Context, tenantID string) Result[*OnboardingProgress] {
	if !ValidTenantID(tenantID) {
		return fail[*OnboardingProgress](ErrInvalidTenantID)
	}

	store, err := u.deps.defaultStore(ctx)
	if err != nil {
		slog.Error("onboarding progress: resolving store", "tenantId", tenantID, "error", err)
		return fail[*OnboardingProgress]("Failed to get onboarding progress")
	}

	tenant, err := store.Tenants.FindByID(ctx, nil, tenantID)
	if err != nil {
		slog.Error("onboarding progress: loading tenant", "tenantId", tenantID, "error", err)
		return fail[*OnboardingProgress]("Failed to get onboarding progress")
	}
	if tenant == nil {
		return fail[*OnboardingProgress](ErrTenantNotFound)
	}

	customer, err := store.Customers.FindDefaultByTenant(ctx, tenantID)
	if err != nil {
		slog.Error("onboarding progress: default customer", "tenantId", tenantID, "error", err)
		return fail[*OnboardingProgress]("Failed to get onboarding progress")
	}
	warehouse, err := store.Warehouses.FindDefaultByTenant(ctx, tenantID)
	if err != nil {
		slog.Error("onboarding progress: default warehouse", "tenantId", tenantID, "error", err)
		return fail[*OnboardingProgress]("Failed to get onboarding progress")
	}
	superAdmin, err := store.Users.FindDefaultByTenant(ctx, tenantID)
	if err != nil {
		slog.Error("onboarding progress: default super admin", "tenantId", tenantID, "error", err)
		return fail[*OnboardingProgress]("Failed to get onboarding progress")
	}
	entityTypes, err := store.EntityTypes.ListByTenant(ctx, tenantID)
	if err != nil {
		slog.Error("onboarding progress: entity types", "tenantId", tenantID, "error", err)
		return fail[*OnboardingProgress]("Failed to get onboarding progress")
	}

	hasAdmin, hasAssociate := false, false
	for _, et := range entityTypes {
		switch et.Name {
		case models.EntityTypeAdmin:
			hasAdmin = true
		case models.EntityTypeAssociate:
			hasAssociate = true
		}
	}

	return ok(&OnboardingProgress{
		Customer:    customer,
		Warehouse:   warehouse,
		SuperAdmin:  superAdmin.Sanitized(),
		EntityTypes: entityTypes,
		IsComplete: customer != nil && warehouse != nil && superAdmin != nil &&
			len(entityTypes) >= 2 && hasAdmin && hasAssociate,
	})
}
