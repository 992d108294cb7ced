package provisioning

import (
	"context"
	"log/slog"
	"time"

	"github.com/wms-platform/tenants-admin/internal/db/repositories"
)

// Listing page bounds
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListTenantsUseCase returns a paginated tenant listing, optionally filtered by
// an active flag and a name/subdomain search term.
type ListTenantsUseCase struct {
	deps Deps
}

func NewListTenantsUseCase(deps Deps) *ListTenantsUseCase {
	return &ListTenantsUseCase{deps: deps}
}

func (u *ListTenantsUseCase) Execute(ctx context.Context, req ListTenantsRequest) Result[*ListTenantsResponse] {
	start := time.Now()
	res := u.run(ctx, req)
	observe("list_tenants", start, res.Success)
	return res
}

func (u *ListTenantsUseCase) run(ctx context.Context, req ListTenantsRequest) Result[*ListTenantsResponse] {
	page := req.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := req.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	filters := repositories.TenantFilters{Active: req.Active}
	if req.Search != "" {
		search := req.Search
		filters.Search = &search
	}

	store, err := u.deps.defaultStore(ctx)
	if err != nil {
		slog.Error("listing tenants: resolving store", "error", err)
		return fail[*ListTenantsResponse]("Failed to list tenants")
	}

	items, total, err := store.Tenants.List(ctx, filters, limit, (page-1)*limit)
	if err != nil {
		slog.Error("listing tenants", "error", err)
		return fail[*ListTenantsResponse]("Failed to list tenants")
	}

	return ok(&ListTenantsResponse{
		Items: items,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + limit - 1) / limit,
		},
	})
}
