// Package transactions provides the PostgreSQL-backed repository for
// financial transaction rows.
package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ledgerkeeper/ledgerkeeper/internal/common"
	"github.com/ledgerkeeper/ledgerkeeper/internal/dbx"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/models"
)

// PostgresRepository implements transaction storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository wraps db, which may be a live connection or an
// open transaction.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, tr *models.Transaction) (*models.Transaction, error) {

	query :=
		`INSERT INTO transactions (user_id, amount, description, date)
         VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		tr.UserID, tr.Amount, tr.Description, tr.Date).Scan(&tr.ID)

	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	return tr, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	query :=
		`SELECT id, user_id, amount, description, date FROM transactions
		 WHERE id = $1
		 `

	tr := &models.Transaction{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&tr.ID, &tr.UserID, &tr.Amount, &tr.Description, &tr.Date)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("select transaction: %w", err)
	}

	return tr, nil
}

// List returns transactions newest-first, optionally scoped to one owner and
// narrowed by the filter. All values travel as query parameters.
func (r *PostgresRepository) List(ctx context.Context, ownerID string, filter *models.TransactionFilter) ([]*models.Transaction, error) {
	query := `SELECT id, user_id, amount, description, date FROM transactions`

	var conds []string
	var args []any

	if ownerID != "" {
		args = append(args, ownerID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter != nil {
		if filter.Query != "" {
			args = append(args, filter.Query)
			conds = append(conds, fmt.Sprintf("description LIKE '%%' || $%d || '%%'", len(args)))
		}
		if filter.MinAmount != nil {
			args = append(args, *filter.MinAmount)
			conds = append(conds, fmt.Sprintf("amount >= $%d", len(args)))
		}
		if filter.MaxAmount != nil {
			args = append(args, *filter.MaxAmount)
			conds = append(conds, fmt.Sprintf("amount <= $%d", len(args)))
		}
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var result []*models.Transaction
	for rows.Next() {
		var item models.Transaction
		if err := rows.Scan(&item.ID, &item.UserID, &item.Amount, &item.Description, &item.Date); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, tr *models.Transaction) error {
	query :=
		`UPDATE transactions SET amount = $1, description = $2, date = $3
		 WHERE id = $4
		 `

	res, err := r.db.ExecContext(ctx, query, tr.Amount, tr.Description, tr.Date, tr.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM transactions WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("affected %d rows, want 1", n)
	}
}
