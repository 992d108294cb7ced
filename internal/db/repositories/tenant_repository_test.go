package repositories

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/wms-platform/tenants-admin/internal/db/models"
)

// ---------------------------------------------------------------------------
// Column definitions
// ---------------------------------------------------------------------------

var tenantCols = []string{
	"id", "name", "subdomain", "active", "api_gateway", "cube_service", "socket_service",
	"enabled_simulations", "type_of_customer", "profile", "features", "modules", "settings",
	"integrations", "created_at", "updated_at",
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTenantRepo(t *testing.T) (*TenantRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	return NewTenantRepository(db), mock
}

func sampleTenantRow() *sqlmock.Rows {
	return sqlmock.NewRows(tenantCols).
		AddRow("tenant_1a2b3c4d5e6f7a8b", "Acme Logistics", "acme", false, nil, nil, nil, true,
			[]byte(`["3PL"]`), nil, []byte(`{"dropship":false}`),
			[]byte(`[{"name":"Receiving","enabled":true}]`), []byte(`{}`), []byte(`[]`),
			time.Now(), time.Now())
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestTenantCreate_Success(t *testing.T) {
	repo, mock := newTenantRepo(t)
	mock.ExpectExec("INSERT INTO tenants").
		WillReturnResult(sqlmock.NewResult(1, 1))

	tenant := &models.Tenant{
		ID:             "tenant_1a2b3c4d5e6f7a8b",
		Name:           "Acme Logistics",
		Subdomain:      "acme",
		TypeOfCustomer: []string{"3PL"},
		Features:       models.DefaultFeatures(),
		Modules:        models.DefaultModules(),
		Settings:       models.DefaultSettings(),
	}
	if err := repo.Create(context.Background(), nil, tenant); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tenant.CreatedAt.IsZero() || tenant.UpdatedAt.IsZero() {
		t.Error("Create did not stamp timestamps")
	}
}

func TestTenantCreate_DBError(t *testing.T) {
	repo, mock := newTenantRepo(t)
	mock.ExpectExec("INSERT INTO tenants").
		WillReturnError(errDB)

	if err := repo.Create(context.Background(), nil, &models.Tenant{ID: "tenant_x"}); err == nil {
		t.Error("expected error, got nil")
	}
}

// ---------------------------------------------------------------------------
// FindByID / FindBySubdomain
// ---------------------------------------------------------------------------

func TestTenantFindByID_Found(t *testing.T) {
	repo, mock := newTenantRepo(t)
	mock.ExpectQuery("SELECT id.*FROM tenants WHERE id").
		WillReturnRows(sampleTenantRow())

	tenant, err := repo.FindByID(context.Background(), nil, "tenant_1a2b3c4d5e6f7a8b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tenant == nil {
		t.Fatal("expected tenant, got nil")
	}
	if tenant.Subdomain != "acme" {
		t.Errorf("Subdomain = %q, want %q", tenant.Subdomain, "acme")
	}
	if len(tenant.Modules) != 1 || tenant.Modules[0].Name != "Receiving" {
		t.Errorf("Modules not decoded: %+v", tenant.Modules)
	}
}

func TestTenantFindByID_NotFound(t *testing.T) {
	repo, mock := newTenantRepo(t)
	mock.ExpectQuery("SELECT id.*FROM tenants WHERE id").
		WillReturnRows(sqlmock.NewRows(tenantCols))

	tenant, err := repo.FindByID(context.Background(), nil, "tenant_missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tenant != nil {
		t.Errorf("expected nil, got %v", tenant)
	}
}

func TestTenantFindBySubdomain_Found(t *testing.T) {
	repo, mock := newTenantRepo(t)
	mock.ExpectQuery("SELECT id.*FROM tenants WHERE subdomain").
		WillReturnRows(sampleTenantRow())

	tenant, err := repo.FindBySubdomain(context.Background(), "acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tenant == nil {
		t.Fatal("expected tenant, got nil")
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestTenantList_NoFilters(t *testing.T) {
	repo, mock := newTenantRepo(t)
	mock.ExpectQuery("SELECT COUNT.*FROM tenants").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT id.*FROM tenants").
		WillReturnRows(sampleTenantRow())

	tenants, total, err := repo.List(context.Background(), TenantFilters{}, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 {
		t.Errorf("total = %d, want 1", total)
	}
	if len(tenants) != 1 {
		t.Errorf("len(tenants) = %d, want 1", len(tenants))
	}
}

func TestTenantList_WithFilters(t *testing.T) {
	repo, mock := newTenantRepo(t)
	mock.ExpectQuery("SELECT COUNT.*FROM tenants.*active.*ILIKE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT id.*FROM tenants.*active.*ILIKE").
		WillReturnRows(sqlmock.NewRows(tenantCols))

	_, total, err := repo.List(context.Background(), TenantFilters{
		Active: boolPtr(true),
		Search: strPtr("acme"),
	}, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
}

func TestTenantList_CountError(t *testing.T) {
	repo, mock := newTenantRepo(t)
	mock.ExpectQuery("SELECT COUNT.*FROM tenants").
		WillReturnError(errDB)

	_, _, err := repo.List(context.Background(), TenantFilters{}, 10, 0)
	if err == nil {
		t.Error("expected error, got nil")
	}
}

// ---------------------------------------------------------------------------
// UpdateByID / DeleteByID
// ---------------------------------------------------------------------------

func TestTenantUpdateByID_StampsUpdatedAt(t *testing.T) {
	repo, mock := newTenantRepo(t)
	mock.ExpectExec("UPDATE tenants").
		WillReturnResult(sqlmock.NewResult(0, 1))

	tenant := &models.Tenant{ID: "tenant_1a2b3c4d5e6f7a8b", Name: "Acme"}
	before := tenant.UpdatedAt
	if err := repo.UpdateByID(context.Background(), nil, tenant); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tenant.UpdatedAt.After(before) {
		t.Error("UpdateByID did not stamp updated_at")
	}
}

func TestTenantDeleteByID(t *testing.T) {
	repo, mock := newTenantRepo(t)
	mock.ExpectExec("DELETE FROM tenants").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteByID(context.Background(), nil, "tenant_1a2b3c4d5e6f7a8b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Transaction participation
// ---------------------------------------------------------------------------

func TestTenantCreate_InTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTenantRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO tenants").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTxx(context.Background(), nil)
	if err != nil {
		t.Fatalf("BeginTxx: %v", err)
	}
	if err := repo.Create(context.Background(), tx, &models.Tenant{ID: "tenant_x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
