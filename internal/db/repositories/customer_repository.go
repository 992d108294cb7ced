// customer_repository.go implements CustomerRepository, providing database queries
// for customer records scoped to a tenant.
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

// CustomerRepository handles customer database operations
type CustomerRepository struct {
	db *sqlx.DB
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) q(tx *sqlx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.db
}

const customerColumns = `id, name, code, tenant_id, is_default, warehouses, currency,
		current_billing_profile, active, meta_data, settings, created_at, updated_at`

func scanCustomer(row rowScanner) (*models.Customer, error) {
	customer := &models.Customer{}
	var warehousesJSON, metaDataJSON, settingsJSON []byte

	err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.Code,
		&customer.TenantID,
		&customer.IsDefault,
		&warehousesJSON,
		&customer.Currency,
		&customer.CurrentBillingProfile,
		&customer.Active,
		&metaDataJSON,
		&settingsJSON,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if warehousesJSON != nil {
		if err := json.Unmarshal(warehousesJSON, &customer.Warehouses); err != nil {
			return nil, err
		}
	}
	if metaDataJSON != nil {
		if err := json.Unmarshal(metaDataJSON, &customer.MetaData); err != nil {
			return nil, err
		}
	}
	if settingsJSON != nil {
		if err := json.Unmarshal(settingsJSON, &customer.Settings); err != nil {
			return nil, err
		}
	}

	return customer, nil
}

// Create inserts a new customer row, assigning its identifier
func (r *CustomerRepository) Create(ctx context.Context, tx *sqlx.Tx, customer *models.Customer) error {
	customer.ID = uuid.New().String()
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt

	warehousesJSON, err := json.Marshal(customer.Warehouses)
	if err != nil {
		return err
	}
	metaDataJSON, err := json.Marshal(customer.MetaData)
	if err != nil {
		return err
	}
	settingsJSON, err := json.Marshal(customer.Settings)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO customers (id, name, code, tenant_id, is_default, warehouses, currency,
			current_billing_profile, active, meta_data, settings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = r.q(tx).ExecContext(ctx, query,
		customer.ID,
		customer.Name,
		customer.Code,
		customer.TenantID,
		customer.IsDefault,
		warehousesJSON,
		customer.Currency,
		customer.CurrentBillingProfile,
		customer.Active,
		metaDataJSON,
		settingsJSON,
		customer.CreatedAt,
		customer.UpdatedAt,
	)

	return err
}

// FindByID retrieves a customer by ID
func (r *CustomerRepository) FindByID(ctx context.Context, customerID string) (*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	customer, err := scanCustomer(r.db.QueryRowContext(ctx, query, customerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// FindDefaultByTenant retrieves the tenant's default customer, if any
func (r *CustomerRepository) FindDefaultByTenant(ctx context.Context, tenantID string) (*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE tenant_id = $1 AND is_default = TRUE`

	customer, err := scanCustomer(r.db.QueryRowContext(ctx, query, tenantID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// ListByTenant retrieves all customers belonging to a tenant
func (r *CustomerRepository) ListByTenant(ctx context.Context, tenantID string) ([]*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE tenant_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]*models.Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}

	return customers, rows.Err()
}

// DeleteByTenant deletes all customers belonging to a tenant
func (r *CustomerRepository) DeleteByTenant(ctx context.Context, tx *sqlx.Tx, tenantID string) error {
	query := `DELETE FROM customers WHERE tenant_id = $1`
	_, err := r.q(tx).ExecContext(ctx, query, tenantID)
	return err
}
