package provisioning

import (
	"context"
	"time"

	"github.com/wms-platform/tenants-admin/internal/audit"
	"github.com/wms-platform/tenants-admin/internal/auth"
	"github.com/wms-platform/tenants-admin/internal/db/repositories"
	"github.com/wms-platform/tenants-admin/internal/regions"
)

const defaultTxTimeout = 30 * time.Second

// Deps bundles what every use case needs: the regional router for repository
// access, the audit trail, and the write-transaction budget.
type Deps struct {
	Router     *regions.Router
	Audit      *audit.Service
	TxTimeout  time.Duration
	BcryptCost int
}

func (d Deps) txTimeout() time.Duration {
	if d.TxTimeout > 0 {
		return d.TxTimeout
	}
	return defaultTxTimeout
}

func (d Deps) bcryptCost() int {
	if d.BcryptCost > 0 {
		return d.BcryptCost
	}
	return auth.DefaultBcryptCost
}

// defaultStore returns the repositories of the home region, where the tenant
// registry and the audit trail live.
func (d Deps) defaultStore(ctx context.Context) (*repositories.Set, error) {
	return d.Router.Repositories(ctx, "")
}
