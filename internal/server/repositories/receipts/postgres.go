package receipts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ledgerkeeper/ledgerkeeper/internal/common"
	"github.com/ledgerkeeper/ledgerkeeper/internal/dbx"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/models"
)

// PostgresRepository implements receipt metadata storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert inserts or replaces the receipt row for a transaction. The update
// arm only fires for the same owner; a conflicting row held by another user
// leaves zero rows affected and returns ErrorConflict.
func (r *PostgresRepository) Upsert(ctx context.Context, receipt *models.Receipt) error {
	query := `
		INSERT INTO receipts (transaction_id, user_id, storage_key, upload_status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (transaction_id)
		DO UPDATE SET
			storage_key = EXCLUDED.storage_key,
			upload_status = EXCLUDED.upload_status
			WHERE receipts.user_id = EXCLUDED.user_id;
	`
	res, err := r.db.ExecContext(ctx, query,
		receipt.TransactionID, receipt.UserID, receipt.StorageKey, receipt.UploadStatus)
	if err != nil {
		return fmt.Errorf("upsert receipt: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorConflict
	default:
		return fmt.Errorf("upsert affected %d rows", n)
	}
}

// GetByTransactionID returns the receipt row for a transaction.
func (r *PostgresRepository) GetByTransactionID(ctx context.Context, transactionID string) (*models.Receipt, error) {
	query := ` SELECT transaction_id, user_id, storage_key, upload_status, created_at from receipts
		WHERE transaction_id=$1
		`

	result := &models.Receipt{}
	err := r.db.QueryRowContext(ctx, query, transactionID).
		Scan(&result.TransactionID, &result.UserID, &result.StorageKey, &result.UploadStatus, &result.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("select receipt: %w", err)
	}
	return result, nil
}

// MarkUploaded marks the transaction's receipt as uploaded. Exactly one row
// must be affected.
func (r *PostgresRepository) MarkUploaded(ctx context.Context, transactionID string) error {
	query := `update receipts set upload_status='uploaded' where transaction_id=$1`
	result, err := r.db.ExecContext(ctx, query, transactionID)
	if err != nil {
		return fmt.Errorf("mark receipt uploaded: %w", err)
	}
	ra, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	if ra != 1 {
		return fmt.Errorf("mark uploaded affected %d rows", ra)
	}
	return nil
}
