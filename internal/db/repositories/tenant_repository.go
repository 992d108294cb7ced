// tenant_repository.go implements TenantRepository, providing database queries for
// tenant profile rows. Tenant identifiers are assigned by the caller; this layer
// never generates them.
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

// TenantRepository handles tenant database operations
type TenantRepository struct {
	db *sqlx.DB
}

// NewTenantRepository creates a new TenantRepository
func NewTenantRepository(db *sqlx.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) q(tx *sqlx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.db
}

// TenantFilters contains filters for listing tenants
type TenantFilters struct {
	Active *bool
	Search *string
}

const tenantColumns = `id, name, subdomain, active, api_gateway, cube_service, socket_service,
		enabled_simulations, type_of_customer, profile, features, modules, settings, integrations,
		created_at, updated_at`

// tenantJSONB holds the marshaled JSONB column values shared by insert and update.
type tenantJSONB struct {
	typeOfCustomer []byte
	profile        []byte
	features       []byte
	modules        []byte
	settings       []byte
	integrations   []byte
}

func marshalTenantJSONB(tenant *models.Tenant) (*tenantJSONB, error) {
	j := &tenantJSONB{}
	var err error
	if j.typeOfCustomer, err = json.Marshal(tenant.TypeOfCustomer); err != nil {
		return nil, fmt.Errorf("marshal type_of_customer: %w", err)
	}
	if j.profile, err = json.Marshal(tenant.Profile); err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	if j.features, err = json.Marshal(tenant.Features); err != nil {
		return nil, fmt.Errorf("marshal features: %w", err)
	}
	if j.modules, err = json.Marshal(tenant.Modules); err != nil {
		return nil, fmt.Errorf("marshal modules: %w", err)
	}
	if j.settings, err = json.Marshal(tenant.Settings); err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}
	if j.integrations, err = json.Marshal(tenant.Integrations); err != nil {
		return nil, fmt.Errorf("marshal integrations: %w", err)
	}
	return j, nil
}

func scanTenant(row rowScanner) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	var apiGateway, cubeService, socketService sql.NullString
	var typeOfCustomerJSON, profileJSON, featuresJSON, modulesJSON, settingsJSON, integrationsJSON []byte

	err := row.Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Subdomain,
		&tenant.Active,
		&apiGateway,
		&cubeService,
		&socketService,
		&tenant.EnabledSimulations,
		&typeOfCustomerJSON,
		&profileJSON,
		&featuresJSON,
		&modulesJSON,
		&settingsJSON,
		&integrationsJSON,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	tenant.APIGateway = apiGateway.String
	tenant.CubeService = cubeService.String
	tenant.SocketService = socketService.String

	for _, col := range []struct {
		raw  []byte
		dest interface{}
	}{
		{typeOfCustomerJSON, &tenant.TypeOfCustomer},
		{profileJSON, &tenant.Profile},
		{featuresJSON, &tenant.Features},
		{modulesJSON, &tenant.Modules},
		{settingsJSON, &tenant.Settings},
		{integrationsJSON, &tenant.Integrations},
	} {
		if col.raw == nil {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dest); err != nil {
			return nil, err
		}
	}

	return tenant, nil
}

// Create inserts a new tenant row. The caller must have assigned tenant.ID.
func (r *TenantRepository) Create(ctx context.Context, tx *sqlx.Tx, tenant *models.Tenant) error {
	tenant.CreatedAt = time.Now()
	tenant.UpdatedAt = tenant.CreatedAt

	j, err := marshalTenantJSONB(tenant)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tenants (id, name, subdomain, active, api_gateway, cube_service, socket_service,
			enabled_simulations, type_of_customer, profile, features, modules, settings, integrations,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err = r.q(tx).ExecContext(ctx, query,
		tenant.ID,
		tenant.Name,
		tenant.Subdomain,
		tenant.Active,
		tenant.APIGateway,
		tenant.CubeService,
		tenant.SocketService,
		tenant.EnabledSimulations,
		j.typeOfCustomer,
		j.profile,
		j.features,
		j.modules,
		j.settings,
		j.integrations,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	)

	return err
}

// FindByID retrieves a tenant by its identifier. A non-nil tx makes the read part
// of the caller's transaction, which the update flow relies on for its
// before-snapshot.
func (r *TenantRepository) FindByID(ctx context.Context, tx *sqlx.Tx, tenantID string) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`

	tenant, err := scanTenant(r.q(tx).QueryRowContext(ctx, query, tenantID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

// FindBySubdomain retrieves a tenant by its subdomain
func (r *TenantRepository) FindBySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE subdomain = $1`

	tenant, err := scanTenant(r.db.QueryRowContext(ctx, query, subdomain))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

// List retrieves tenants with optional filters and pagination
func (r *TenantRepository) List(ctx context.Context, filters TenantFilters, limit, offset int) ([]*models.Tenant, int, error) {
	countQuery := `SELECT COUNT(*) FROM tenants WHERE 1=1`
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE 1=1`

	args := make([]interface{}, 0)
	paramIndex := 1

	if filters.Active != nil {
		countQuery += fmt.Sprintf(` AND active = $%d`, paramIndex)
		query += fmt.Sprintf(` AND active = $%d`, paramIndex)
		args = append(args, *filters.Active)
		paramIndex++
	}

	if filters.Search != nil {
		countQuery += fmt.Sprintf(` AND (name ILIKE $%d OR subdomain ILIKE $%d)`, paramIndex, paramIndex)
		query += fmt.Sprintf(` AND (name ILIKE $%d OR subdomain ILIKE $%d)`, paramIndex, paramIndex)
		args = append(args, "%"+*filters.Search+"%")
		paramIndex++
	}

	var total int
	err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, paramIndex, paramIndex+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tenants := make([]*models.Tenant, 0)
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, 0, err
		}
		tenants = append(tenants, tenant)
	}

	return tenants, total, rows.Err()
}

// UpdateByID replaces the mutable columns of a tenant row and stamps updated_at
func (r *TenantRepository) UpdateByID(ctx context.Context, tx *sqlx.Tx, tenant *models.Tenant) error {
	tenant.UpdatedAt = time.Now()

	j, err := marshalTenantJSONB(tenant)
	if err != nil {
		return err
	}

	query := `
		UPDATE tenants
		SET name = $2, subdomain = $3, active = $4, api_gateway = $5, cube_service = $6,
			socket_service = $7, enabled_simulations = $8, type_of_customer = $9, profile = $10,
			features = $11, modules = $12, settings = $13, integrations = $14, updated_at = $15
		WHERE id = $1
	`

	_, err = r.q(tx).ExecContext(ctx, query,
		tenant.ID,
		tenant.Name,
		tenant.Subdomain,
		tenant.Active,
		tenant.APIGateway,
		tenant.CubeService,
		tenant.SocketService,
		tenant.EnabledSimulations,
		j.typeOfCustomer,
		j.profile,
		j.features,
		j.modules,
		j.settings,
		j.integrations,
		tenant.UpdatedAt,
	)

	return err
}

// DeleteByID deletes a tenant row
func (r *TenantRepository) DeleteByID(ctx context.Context, tx *sqlx.Tx, tenantID string) error {
	query := `DELETE FROM tenants WHERE id = $1`
	_, err := r.q(tx).ExecContext(ctx, query, tenantID)
	return err
}

// Count returns the total number of tenants
func (r *TenantRepository) Count(ctx context.Context) (int, error) {
	var total int
	query := `SELECT COUNT(*) FROM tenants`
	err := r.db.QueryRowContext(ctx, query).Scan(&total)
	return total, err
}
