// entity_type_repository.go implements EntityTypeRepository, providing database
// queries for the tenant-scoped role/permission-bundle definitions.
package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/wms-platform/tenants-admin/internal/db/models"
)

// EntityTypeRepository handles entity type database operations
type EntityTypeRepository struct {
	db *sqlx.DB
}

// NewEntityTypeRepository creates a new EntityTypeRepository
func NewEntityTypeRepository(db *sqlx.DB) *EntityTypeRepository {
	return &EntityTypeRepository{db: db}
}

func (r *EntityTypeRepository) q(tx *sqlx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.db
}

const entityTypeColumns = `id, name, entity_parent, tenant_id, attributes, created_at, updated_at`

func scanEntityType(row rowScanner) (*models.EntityType, error) {
	entityType := &models.EntityType{}
	var entityParent sql.NullString
	var attributesJSON []byte

	err := row.Scan(
		&entityType.ID,
		&entityType.Name,
		&entityParent,
		&entityType.TenantID,
		&attributesJSON,
		&entityType.CreatedAt,
		&entityType.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	entityType.EntityParent = entityParent.String

	if attributesJSON != nil {
		if err := json.Unmarshal(attributesJSON, &entityType.Attributes); err != nil {
			return nil, err
		}
	}

	return entityType, nil
}

// Create inserts a new entity type row, assigning its identifier
func (r *EntityTypeRepository) Create(ctx context.Context, tx *sqlx.Tx, entityType *models.EntityType) error {
	entityType.ID = uuid.New().String()
	entityType.CreatedAt = time.Now()
	entityType.UpdatedAt = entityType.CreatedAt

	attributesJSON, err := json.Marshal(entityType.Attributes)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO entity_types (id, name, entity_parent, tenant_id, attributes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.q(tx).ExecContext(ctx, query,
		entityType.ID,
		entityType.Name,
		entityType.EntityParent,
		entityType.TenantID,
		attributesJSON,
		entityType.CreatedAt,
		entityType.UpdatedAt,
	)

	return err
}

// CreateBatch inserts several entity type rows within the same statement sequence.
// Used by provisioning to seed ADMIN and ASSOCIATE together.
func (r *EntityTypeRepository) CreateBatch(ctx context.Context, tx *sqlx.Tx, entityTypes []*models.EntityType) error {
	for _, entityType := range entityTypes {
		if err := r.Create(ctx, tx, entityType); err != nil {
			return err
		}
	}
	return nil
}

// FindByName retrieves one entity type of a tenant by name
func (r *EntityTypeRepository) FindByName(ctx context.Context, tenantID, name string) (*models.EntityType, error) {
	query := `SELECT ` + entityTypeColumns + ` FROM entity_types WHERE tenant_id = $1 AND name = $2`

	entityType, err := scanEntityType(r.db.QueryRowContext(ctx, query, tenantID, name))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entityType, nil
}

// ListByTenant retrieves all entity types belonging to a tenant
func (r *EntityTypeRepository) ListByTenant(ctx context.Context, tenantID string) ([]*models.EntityType, error) {
	query := `SELECT ` + entityTypeColumns + ` FROM entity_types WHERE tenant_id = $1 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entityTypes := make([]*models.EntityType, 0)
	for rows.Next() {
		entityType, err := scanEntityType(rows)
		if err != nil {
			return nil, err
		}
		entityTypes = append(entityTypes, entityType)
	}

	return entityTypes, rows.Err()
}

// DeleteByTenant deletes all entity types belonging to a tenant
func (r *EntityTypeRepository) DeleteByTenant(ctx context.Context, tx *sqlx.Tx, tenantID string) error {
	query := `DELETE FROM entity_types WHERE tenant_id = $1`
	_, err := r.q(tx).ExecContext(ctx, query, tenantID)
	return err
}
