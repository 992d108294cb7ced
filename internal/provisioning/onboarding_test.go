package provisioning

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/wms-platform/tenants-admin/internal/db/models"
)

// ---------------------------------------------------------------------------
// OnboardingProgressUseCase
// ---------------------------------------------------------------------------

// expectOnboardingReads queues the sibling lookups behind the tenant read.
func expectOnboardingReads(mock sqlmock.Sqlmock, customer, warehouse, superAdmin *sqlmock.Rows, entityTypes *sqlmock.Rows) {
	mock.ExpectQuery("SELECT (.+) FROM tenants").
		WithArgs(testTenantID).
		WillReturnRows(tenantRow(testTenantID))
	mock.ExpectQuery("SELECT (.+) FROM customers").
		WithArgs(testTenantID).WillReturnRows(customer)
	mock.ExpectQuery("SELECT (.+) FROM warehouses").
		WithArgs(testTenantID).WillReturnRows(warehouse)
	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(testTenantID).WillReturnRows(superAdmin)
	mock.ExpectQuery("SELECT (.+) FROM entity_types").
		WithArgs(testTenantID).WillReturnRows(entityTypes)
}

func TestOnboardingProgress_Complete(t *testing.T) {
	deps, mock := newDeps(t)
	expectOnboardingReads(mock,
		customerRow(testTenantID),
		warehouseRow(testTenantID),
		userRow(testTenantID),
		entityTypeRows(testTenantID, models.EntityTypeAdmin, models.EntityTypeAssociate))

	res := NewOnboardingProgressUseCase(deps).Execute(context.Background(), testTenantID)

	if !res.Success {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
	if !res.Data.IsComplete {
		t.Error("all siblings present, onboarding should be complete")
	}
	if res.Data.SuperAdmin.Password != "" {
		t.Error("super admin must come back sanitized")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestOnboardingProgress_MissingWarehouse(t *testing.T) {
	deps, mock := newDeps(t)
	expectOnboardingReads(mock,
		customerRow(testTenantID),
		noRows(),
		userRow(testTenantID),
		entityTypeRows(testTenantID, models.EntityTypeAdmin, models.EntityTypeAssociate))

	res := NewOnboardingProgressUseCase(deps).Execute(context.Background(), testTenantID)

	if !res.Success {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
	if res.Data.IsComplete {
		t.Error("missing warehouse should leave onboarding incomplete")
	}
	if res.Data.Warehouse != nil {
		t.Errorf("Warehouse = %+v", res.Data.Warehouse)
	}
}

func TestOnboardingProgress_MissingAssociateRole(t *testing.T) {
	deps, mock := newDeps(t)
	expectOnboardingReads(mock,
		customerRow(testTenantID),
		warehouseRow(testTenantID),
		userRow(testTenantID),
		entityTypeRows(testTenantID, models.EntityTypeAdmin))

	res := NewOnboardingProgressUseCase(deps).Execute(context.Background(), testTenantID)

	if !res.Success {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
	if res.Data.IsComplete {
		t.Error("ADMIN alone is not enough, ASSOCIATE is required too")
	}
}

func TestOnboardingProgress_UnrelatedRolesDoNotCount(t *testing.T) {
	deps, mock := newDeps(t)
	expectOnboardingReads(mock,
		customerRow(testTenantID),
		warehouseRow(testTenantID),
		userRow(testTenantID),
		entityTypeRows(testTenantID, "MANAGER", "VIEWER"))

	res := NewOnboardingProgressUseCase(deps).Execute(context.Background(), testTenantID)

	if !res.Success {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
	if res.Data.IsComplete {
		t.Error("two arbitrary roles must not satisfy the ADMIN/ASSOCIATE requirement")
	}
}

func TestOnboardingProgress_TenantNotFound(t *testing.T) {
	deps, mock := newDeps(t)
	mock.ExpectQuery("SELECT (.+) FROM tenants").
		WithArgs(testTenantID).
		WillReturnRows(noRows())

	res := NewOnboardingProgressUseCase(deps).Execute(context.Background(), testTenantID)

	if res.Success || res.Error != ErrTenantNotFound {
		t.Errorf("got success=%v error=%q", res.Success, res.Error)
	}
}
