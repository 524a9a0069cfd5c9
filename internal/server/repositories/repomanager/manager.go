package repomanager

import (
	"context"
	"database/sql"

	"github.com/ledgerkeeper/ledgerkeeper/internal/dbx"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/repositories/receipts"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/repositories/transactions"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Transactions(db dbx.DBTX) transactions.Repository
	Receipts(db dbx.DBTX) receipts.Repository
}
