package receipts

import (
	"context"

	"github.com/ledgerkeeper/ledgerkeeper/internal/server/models"
)

type Repository interface {
	Upsert(ctx context.Context, receipt *models.Receipt) error
	GetByTransactionID(ctx context.Context, transactionID string) (*models.Receipt, error)
	MarkUploaded(ctx context.Context, transactionID string) error
}
