// Package repositories implements the data access layer (repository pattern) for the
// tenant provisioning service. Each repository type encapsulates all database queries
// for a domain entity. Use cases never issue SQL directly — all database access goes
// through this layer, which keeps query logic testable in isolation.
//
// Mutating methods accept an optional *sqlx.Tx so several repositories can take part
// in one provisioning transaction; passing nil runs the statement on the repository's
// own connection in autocommit mode.
package repositories

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// querier is the subset of database/sql operations shared by *sqlx.DB and *sqlx.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Set bundles one repository per entity, all bound to the same database handle.
// The regional router hands out one Set per regional store; use cases start
// transactions on DB and pass the resulting tx into the repositories.
type Set struct {
	DB          *sqlx.DB
	Tenants     *TenantRepository
	Customers   *CustomerRepository
	Warehouses  *WarehouseRepository
	Users       *UserRepository
	EntityTypes *EntityTypeRepository
	AuditLogs   *AuditRepository
}

// NewSet creates a repository set bound to db.
func NewSet(db *sqlx.DB) *Set {
	return &Set{
		DB:          db,
		Tenants:     NewTenantRepository(db),
		Customers:   NewCustomerRepository(db),
		Warehouses:  NewWarehouseRepository(db),
		Users:       NewUserRepository(db),
		EntityTypes: NewEntityTypeRepository(db),
		AuditLogs:   NewAuditRepository(db),
	}
}
