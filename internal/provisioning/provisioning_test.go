package provisioning

import (
	"encoding/json"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/wms-platform/tenants-admin/internal/audit"
	"github.com/wms-platform/tenants-admin/internal/db/repositories"
	"github.com/wms-platform/tenants-admin/internal/regions"
)

// ---------------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------------

const testTenantID = "tenant_1a2b3c4d5e6f7a8b"

// newDeps wires the use-case dependencies over a single mocked database that
// serves as the home region store.
func newDeps(t *testing.T) (Deps, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { raw.Close() })
	db := sqlx.NewDb(raw, "sqlmock")

	return Deps{
		Router:     regions.NewRouter(nil, db, regions.Options{}),
		Audit:      audit.NewService(repositories.NewAuditRepository(db), nil),
		BcryptCost: bcrypt.MinCost,
	}, mock
}

func mustJSON(v interface{}) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}

// Row fixtures matching the repository column order.

func tenantRow(id string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "subdomain", "active", "api_gateway", "cube_service", "socket_service",
		"enabled_simulations", "type_of_customer", "profile", "features", "modules", "settings",
		"integrations", "created_at", "updated_at",
	}).AddRow(id, "Acme Logistics", "acme", false, nil, nil, nil, true,
		[]byte(`["3PL"]`), nil, []byte(`{"dropship":false}`),
		[]byte(`[{"name":"Receiving","enabled":true}]`), []byte(`{}`), []byte(`[]`),
		time.Now(), time.Now())
}

func noRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id"})
}

func customerRow(tenantID string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "code", "tenant_id", "is_default", "warehouses", "currency",
		"current_billing_profile", "active", "meta_data", "settings", "created_at", "updated_at",
	}).AddRow("cust-1", "Default", "DEF", tenantID, true, []byte(`[]`), "$", nil, true,
		nil, nil, time.Now(), time.Now())
}

func warehouseRow(tenantID string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "code", "tenant_id", "is_default", "active", "location",
		"split_orders_enabled", "type_of_warehouse", "address", "storage_types",
		"created_at", "updated_at",
	}).AddRow("wh-1", "Default Warehouse", "DEF", tenantID, true, true, "Default",
		nil, []byte(`["D2C","B2B"]`), []byte(`{"city":"Default City","country":"US"}`),
		[]byte(`["Ambient"]`), time.Now(), time.Now())
}

func userRow(tenantID string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "username", "email", "password", "role", "tenant_id", "is_default",
		"is_email_verified", "terms_accepted", "activated", "permissions", "page_preferences",
		"meta", "created_at", "updated_at",
	}).AddRow("user-1", "Super Admin", "super.admin", "engineering@hopstack.io",
		DefaultSuperAdminPasswordHash, "ADMIN", tenantID, true, true, true, true,
		[]byte(`[{"route":"/orders","readable":true,"writable":true}]`),
		[]byte(`[{"route":"/orders","visible":true}]`), nil, time.Now(), time.Now())
}

func entityTypeRows(tenantID string, names ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "entity_parent", "tenant_id", "attributes", "created_at", "updated_at",
	})
	for i, name := range names {
		rows.AddRow("et-"+string(rune('1'+i)), name, "USER_ROLE", tenantID,
			[]byte(`{"permissionOptions":[]}`), time.Now(), time.Now())
	}
	return rows
}
