// warehouse_repository.go implements WarehouseRepository, providing database queries
// for warehouse records scoped to a tenant.
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

// WarehouseRepository handles warehouse database operations
type WarehouseRepository struct {
	db *sqlx.DB
}

// NewWarehouseRepository creates a new WarehouseRepository
func NewWarehouseRepository(db *sqlx.DB) *WarehouseRepository {
	return &WarehouseRepository{db: db}
}

func (r *WarehouseRepository) q(tx *sqlx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.db
}

const warehouseColumns = `id, name, code, tenant_id, is_default, active, location,
		split_orders_enabled, type_of_warehouse, address, storage_types, created_at, updated_at`

func scanWarehouse(row rowScanner) (*models.Warehouse, error) {
	warehouse := &models.Warehouse{}
	var location sql.NullString
	var typeOfWarehouseJSON, addressJSON, storageTypesJSON []byte

	err := row.Scan(
		&warehouse.ID,
		&warehouse.Name,
		&warehouse.Code,
		&warehouse.TenantID,
		&warehouse.IsDefault,
		&warehouse.Active,
		&location,
		&warehouse.SplitOrdersEnabled,
		&typeOfWarehouseJSON,
		&addressJSON,
		&storageTypesJSON,
		&warehouse.CreatedAt,
		&warehouse.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	warehouse.Location = location.String

	if typeOfWarehouseJSON != nil {
		if err := json.Unmarshal(typeOfWarehouseJSON, &warehouse.TypeOfWarehouse); err != nil {
			return nil, err
		}
	}
	if addressJSON != nil {
		if err := json.Unmarshal(addressJSON, &warehouse.Address); err != nil {
			return nil, err
		}
	}
	if storageTypesJSON != nil {
		if err := json.Unmarshal(storageTypesJSON, &warehouse.StorageTypes); err != nil {
			return nil, err
		}
	}

	return warehouse, nil
}

// Create inserts a new warehouse row, assigning its identifier
func (r *WarehouseRepository) Create(ctx context.Context, tx *sqlx.Tx, warehouse *models.Warehouse) error {
	warehouse.ID = uuid.New().String()
	warehouse.CreatedAt = time.Now()
	warehouse.UpdatedAt = warehouse.CreatedAt

	typeOfWarehouseJSON, err := json.Marshal(warehouse.TypeOfWarehouse)
	if err != nil {
		return err
	}
	addressJSON, err := json.Marshal(warehouse.Address)
	if err != nil {
		return err
	}
	storageTypesJSON, err := json.Marshal(warehouse.StorageTypes)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO warehouses (id, name, code, tenant_id, is_default, active, location,
			split_orders_enabled, type_of_warehouse, address, storage_types, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = r.q(tx).ExecContext(ctx, query,
		warehouse.ID,
		warehouse.Name,
		warehouse.Code,
		warehouse.TenantID,
		warehouse.IsDefault,
		warehouse.Active,
		warehouse.Location,
		warehouse.SplitOrdersEnabled,
		typeOfWarehouseJSON,
		addressJSON,
		storageTypesJSON,
		warehouse.CreatedAt,
		warehouse.UpdatedAt,
	)

	return err
}

// FindByID retrieves a warehouse by ID
func (r *WarehouseRepository) FindByID(ctx context.Context, warehouseID string) (*models.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE id = $1`

	warehouse, err := scanWarehouse(r.db.QueryRowContext(ctx, query, warehouseID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return warehouse, nil
}

// FindDefaultByTenant retrieves the tenant's default warehouse, if any
func (r *WarehouseRepository) FindDefaultByTenant(ctx context.Context, tenantID string) (*models.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE tenant_id = $1 AND is_default = TRUE`

	warehouse, err := scanWarehouse(r.db.QueryRowContext(ctx, query, tenantID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return warehouse, nil
}

// ListByTenant retrieves all warehouses belonging to a tenant
func (r *WarehouseRepository) ListByTenant(ctx context.Context, tenantID string) ([]*models.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE tenant_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	warehouses := make([]*models.Warehouse, 0)
	for rows.Next() {
		warehouse, err := scanWarehouse(rows)
		if err != nil {
			return nil, err
		}
		warehouses = append(warehouses, warehouse)
	}

	return warehouses, rows.Err()
}

// DeleteByTenant deletes all warehouses belonging to a tenant
func (r *WarehouseRepository) DeleteByTenant(ctx context.Context, tx *sqlx.Tx, tenantID string) error {
	query := `DELETE FROM warehouses WHERE tenant_id = $1`
	_, err := r.q(tx).ExecContext(ctx, query, tenantID)
	return err
}
