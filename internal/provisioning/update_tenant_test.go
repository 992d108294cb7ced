package provisioning

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/wms-platform/tenants-admin/internal/db/models"
)

// capturedArg records the value sqlmock matched so the test can inspect what
// the use case actually wrote.
type capturedArg struct {
	value driver.Value
}

func (c *capturedArg) Match(v driver.Value) bool {
	c.value = v
	return true
}

// ---------------------------------------------------------------------------
// UpdateTenantUseCase
// ---------------------------------------------------------------------------

func TestUpdateTenant_InvalidID(t *testing.T) {
	deps, mock := newDeps(t)

	res := NewUpdateTenantUseCase(deps).Execute(context.Background(), UpdateTenantRequest{ID: "acme"})

	if res.Success || res.Error != ErrInvalidTenantID {
		t.Errorf("got success=%v error=%q", res.Success, res.Error)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("invalid IDs must not touch the database: %v", err)
	}
}

func TestUpdateTenant_NotFound(t *testing.T) {
	deps, mock := newDeps(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM tenants").
		WithArgs(testTenantID).
		WillReturnRows(noRows())
	mock.ExpectRollback()

	res := NewUpdateTenantUseCase(deps).Execute(context.Background(), UpdateTenantRequest{
		ID:     testTenantID,
		Update: TenantPayload{Name: "Renamed"},
	})

	if res.Success || res.Error != ErrTenantNotFound {
		t.Errorf("got success=%v error=%q", res.Success, res.Error)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateTenant_AppliesChangesAndAudits(t *testing.T) {
	deps, mock := newDeps(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM tenants").
		WithArgs(testTenantID).
		WillReturnRows(tenantRow(testTenantID))
	mock.ExpectExec("UPDATE tenants").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO audit_logs").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	active := true
	res := NewUpdateTenantUseCase(deps).Execute(context.Background(), UpdateTenantRequest{
		ID:     testTenantID,
		Update: TenantPayload{Name: "Acme Fulfillment", Active: &active},
	})

	if !res.Success {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
	if res.Message != "Tenant updated successfully" {
		t.Errorf("Message = %q", res.Message)
	}
	if res.Data.Name != "Acme Fulfillment" || !res.Data.Active {
		t.Errorf("updated tenant = %+v", res.Data)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateTenant_AuditEntryCarriesExactDelta(t *testing.T) {
	deps, mock := newDeps(t)
	changesArg := &capturedArg{}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM tenants").
		WithArgs(testTenantID).
		WillReturnRows(tenantRow(testTenantID))
	mock.ExpectExec("UPDATE tenants").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(sqlmock.AnyArg(), testTenantID, models.AuditActionUpdate, "Tenant",
			testTenantID, sqlmock.AnyArg(), sqlmock.AnyArg(), changesArg, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	active := true
	res := NewUpdateTenantUseCase(deps).Execute(context.Background(), UpdateTenantRequest{
		ID:     testTenantID,
		Update: TenantPayload{Active: &active},
	})

	if !res.Success {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}

	raw, ok := changesArg.value.([]byte)
	if !ok {
		t.Fatalf("changes argument is %T, want []byte", changesArg.value)
	}
	var changes models.AuditChanges
	if err := json.Unmarshal(raw, &changes); err != nil {
		t.Fatalf("unmarshal changes: %v", err)
	}
	if len(changes.Modified) != 1 {
		t.Fatalf("Modified = %v, want exactly the active flip", changes.Modified)
	}
	delta, ok := changes.Modified["active"]
	if !ok {
		t.Fatalf("Modified = %v, missing active", changes.Modified)
	}
	if delta.From != false || delta.To != true {
		t.Errorf("active delta = %+v, want false -> true", delta)
	}
	if changes.Before == nil || changes.After == nil {
		t.Error("audit entry must carry both snapshots")
	}
	if _, found := changes.After["updatedAt"]; found {
		t.Error("snapshots must not carry timestamps")
	}
}

func TestUpdateTenant_RollsBackOnWriteFailure(t *testing.T) {
	deps, mock := newDeps(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM tenants").
		WithArgs(testTenantID).
		WillReturnRows(tenantRow(testTenantID))
	mock.ExpectExec("UPDATE tenants").WillReturnError(errDB)
	mock.ExpectRollback()

	res := NewUpdateTenantUseCase(deps).Execute(context.Background(), UpdateTenantRequest{
		ID:     testTenantID,
		Update: TenantPayload{Name: "Renamed"},
	})

	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Error != "Failed to update tenant" {
		t.Errorf("Error = %q", res.Error)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
