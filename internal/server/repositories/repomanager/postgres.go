// Package repomanager groups the PostgreSQL repository constructors behind
// a single factory and owns applying the schema migrations at startup.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/ledgerkeeper/ledgerkeeper/internal/dbx"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/migrations"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/repositories/receipts"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/repositories/transactions"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/repositories/users"
)

// PostgresRepositoryManager builds the PostgreSQL implementations of the
// repository interfaces. The db each factory takes may be a pool or an open
// transaction, so a unit of work can bind every repository to one tx.
type PostgresRepositoryManager struct{}

// Users binds a user repository to db.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Transactions binds a transaction repository to db.
func (m *PostgresRepositoryManager) Transactions(db dbx.DBTX) transactions.Repository {
	return transactions.NewPostgresRepository(db)
}

// Receipts binds a receipt repository to db.
func (m *PostgresRepositoryManager) Receipts(db dbx.DBTX) receipts.Repository {
	return receipts.NewPostgresRepository(db)
}

// Tests replace runGooseUp to observe migration runs without a database.
var runGooseUp = goose.UpContext

// RunMigrations points goose at the embedded migration files and applies
// anything outstanding.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return runGooseUp(ctx, db, ".")
}

// NewPostgresRepositoryManager returns the manager the server wires in.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
