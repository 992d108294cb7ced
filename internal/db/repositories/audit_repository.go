// audit_repository.go implements AuditRepository, providing database queries for
// writing and retrieving tenant audit trail entries with filtered, paginated reads.
// Stamping of entry identifiers and timestamps is the audit service's job; this
// layer writes rows exactly as given.
package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/wms-platform/tenants-admin/internal/db/models"
)

// AuditRepository handles audit log database operations
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) q(tx *sqlx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.db
}

// AuditFilters contains filters for querying audit logs. PerformedBy matches the
// actor's user id, username, or email.
type AuditFilters struct {
	EntityType  *string
	EntityID    *string
	Action      *string
	PerformedBy *string
	StartDate   *time.Time
	EndDate     *time.Time
}

const auditColumns = `id, tenant_id, action, entity_type, entity_id, performed_by, ts, changes, metadata`

func scanAuditLog(row rowScanner) (*models.AuditLog, error) {
	entry := &models.AuditLog{}
	var performedByJSON, changesJSON, metadataJSON []byte

	err := row.Scan(
		&entry.ID,
		&entry.TenantID,
		&entry.Action,
		&entry.EntityType,
		&entry.EntityID,
		&performedByJSON,
		&entry.Timestamp,
		&changesJSON,
		&metadataJSON,
	)
	if err != nil {
		return nil, err
	}

	if performedByJSON != nil {
		if err := json.Unmarshal(performedByJSON, &entry.PerformedBy); err != nil {
			return nil, err
		}
	}
	if changesJSON != nil {
		if err := json.Unmarshal(changesJSON, &entry.Changes); err != nil {
			return nil, err
		}
	}
	if metadataJSON != nil {
		if err := json.Unmarshal(metadataJSON, &entry.Metadata); err != nil {
			return nil, err
		}
	}

	return entry, nil
}

// Insert writes one audit log entry. The entry must already carry its ID and
// timestamp.
func (r *AuditRepository) Insert(ctx context.Context, tx *sqlx.Tx, entry *models.AuditLog) error {
	performedByJSON, err := json.Marshal(entry.PerformedBy)
	if err != nil {
		return err
	}

	var changesJSON []byte
	if entry.Changes != nil {
		changesJSON, err = json.Marshal(entry.Changes)
		if err != nil {
			return err
		}
	}

	var metadataJSON []byte
	if entry.Metadata != nil {
		metadataJSON, err = json.Marshal(entry.Metadata)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO audit_logs (id, tenant_id, action, entity_type, entity_id, performed_by, ts, changes, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.q(tx).ExecContext(ctx, query,
		entry.ID,
		entry.TenantID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		performedByJSON,
		entry.Timestamp,
		changesJSON,
		metadataJSON,
	)

	return err
}

// List retrieves a tenant's audit log entries with optional filters and
// pagination, newest first
func (r *AuditRepository) List(ctx context.Context, tenantID string, filters AuditFilters, limit, offset int) ([]*models.AuditLog, int, error) {
	countQuery := `SELECT COUNT(*) FROM audit_logs WHERE tenant_id = $1`
	query := `SELECT ` + auditColumns + ` FROM audit_logs WHERE tenant_id = $1`

	args := []interface{}{tenantID}
	paramIndex := 2

	if filters.EntityType != nil {
		countQuery += fmt.Sprintf(` AND entity_type = $%d`, paramIndex)
		query += fmt.Sprintf(` AND entity_type = $%d`, paramIndex)
		args = append(args, *filters.EntityType)
		paramIndex++
	}

	if filters.EntityID != nil {
		countQuery += fmt.Sprintf(` AND entity_id = $%d`, paramIndex)
		query += fmt.Sprintf(` AND entity_id = $%d`, paramIndex)
		args = append(args, *filters.EntityID)
		paramIndex++
	}

	if filters.Action != nil {
		countQuery += fmt.Sprintf(` AND action = $%d`, paramIndex)
		query += fmt.Sprintf(` AND action = $%d`, paramIndex)
		args = append(args, *filters.Action)
		paramIndex++
	}

	if filters.PerformedBy != nil {
		clause := fmt.Sprintf(` AND (performed_by->>'userId' = $%d OR performed_by->>'username' = $%d OR performed_by->>'email' = $%d)`,
			paramIndex, paramIndex, paramIndex)
		countQuery += clause
		query += clause
		args = append(args, *filters.PerformedBy)
		paramIndex++
	}

	if filters.StartDate != nil {
		countQuery += fmt.Sprintf(` AND ts >= $%d`, paramIndex)
		query += fmt.Sprintf(` AND ts >= $%d`, paramIndex)
		args = append(args, *filters.StartDate)
		paramIndex++
	}

	if filters.EndDate != nil {
		countQuery += fmt.Sprintf(` AND ts <= $%d`, paramIndex)
		query += fmt.Sprintf(` AND ts <= $%d`, paramIndex)
		args = append(args, *filters.EndDate)
		paramIndex++
	}

	var total int
	err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY ts DESC LIMIT $%d OFFSET $%d`, paramIndex, paramIndex+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries := make([]*models.AuditLog, 0)
	for rows.Next() {
		entry, err := scanAuditLog(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}

	return entries, total, rows.Err()
}

// FindByID retrieves a single audit log entry
func (r *AuditRepository) FindByID(ctx context.Context, entryID string) (*models.AuditLog, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_logs WHERE id = $1`

	entry, err := scanAuditLog(r.db.QueryRowContext(ctx, query, entryID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteByTenant deletes the entire audit trail of a tenant. Only used during
// full tenant teardown.
func (r *AuditRepository) DeleteByTenant(ctx context.Context, tx *sqlx.Tx, tenantID string) error {
	query := `DELETE FROM audit_logs WHERE tenant_id = $1`
	_, err := r.q(tx).ExecContext(ctx, query, tenantID)
	return err
}
