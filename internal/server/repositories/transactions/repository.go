package transactions

import (
	"context"

	"github.com/ledgerkeeper/ledgerkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, tr *models.Transaction) (*models.Transaction, error)
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	// List returns rows newest-first (date, then id). Empty ownerID means no
	// owner scoping; filter may be nil.
	List(ctx context.Context, ownerID string, filter *models.TransactionFilter) ([]*models.Transaction, error)
	Update(ctx context.Context, tr *models.Transaction) error
	Delete(ctx context.Context, id string) error
}
