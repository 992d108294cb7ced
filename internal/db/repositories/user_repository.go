// user_repository.go implements UserRepository, providing database queries for
// tenant-scoped user accounts. Password hashes travel through this layer as opaque
// strings; hashing happens in the auth package before a user ever reaches a query.
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

// UserRepository handles user database operations
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) q(tx *sqlx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.db
}

const userColumns = `id, name, username, email, password, role, tenant_id, is_default,
		is_email_verified, terms_accepted, activated, permissions, page_preferences, meta,
		created_at, updated_at`

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var permissionsJSON, pagePreferencesJSON, metaJSON []byte

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.TenantID,
		&user.IsDefault,
		&user.IsEmailVerified,
		&user.TermsAccepted,
		&user.Activated,
		&permissionsJSON,
		&pagePreferencesJSON,
		&metaJSON,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if permissionsJSON != nil {
		if err := json.Unmarshal(permissionsJSON, &user.Permissions); err != nil {
			return nil, err
		}
	}
	if pagePreferencesJSON != nil {
		if err := json.Unmarshal(pagePreferencesJSON, &user.PagePreferences); err != nil {
			return nil, err
		}
	}
	if metaJSON != nil {
		if err := json.Unmarshal(metaJSON, &user.Meta); err != nil {
			return nil, err
		}
	}

	return user, nil
}

// Create inserts a new user row, assigning its identifier
func (r *UserRepository) Create(ctx context.Context, tx *sqlx.Tx, user *models.User) error {
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	permissionsJSON, err := json.Marshal(user.Permissions)
	if err != nil {
		return err
	}
	pagePreferencesJSON, err := json.Marshal(user.PagePreferences)
	if err != nil {
		return err
	}
	metaJSON, err := json.Marshal(user.Meta)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (id, name, username, email, password, role, tenant_id, is_default,
			is_email_verified, terms_accepted, activated, permissions, page_preferences, meta,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err = r.q(tx).ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Username,
		user.Email,
		user.Password,
		user.Role,
		user.TenantID,
		user.IsDefault,
		user.IsEmailVerified,
		user.TermsAccepted,
		user.Activated,
		permissionsJSON,
		pagePreferencesJSON,
		metaJSON,
		user.CreatedAt,
		user.UpdatedAt,
	)

	return err
}

// FindByID retrieves a user by ID
func (r *UserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail retrieves a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindDefaultByTenant retrieves the tenant's default super-admin account, if any
func (r *UserRepository) FindDefaultByTenant(ctx context.Context, tenantID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE tenant_id = $1 AND is_default = TRUE`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, tenantID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListByTenant retrieves all users belonging to a tenant
func (r *UserRepository) ListByTenant(ctx context.Context, tenantID string) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE tenant_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// DeleteByTenant deletes all users belonging to a tenant
func (r *UserRepository) DeleteByTenant(ctx context.Context, tx *sqlx.Tx, tenantID string) error {
	query := `DELETE FROM users WHERE tenant_id = $1`
	_, err := r.q(tx).ExecContext(ctx, query, tenantID)
	return err
}
