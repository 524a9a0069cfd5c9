package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ledgerkeeper/ledgerkeeper/internal/common"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/auth"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/models"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/repositories/repomanager"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/repositories/transactions"
)

const maxDescriptionLength = 255

// TransactionService implements the financial-record operations. Every
// operation takes the acting user; ownership checks go through auth.CanAccess
// so that admin override and owner-only rules live in one place.
type TransactionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTransactionService(db *sql.DB, m repomanager.RepositoryManager) *TransactionService {
	return &TransactionService{db: db, repomanager: m}
}

// Create records a new transaction owned by the actor.
func (s *TransactionService) Create(ctx context.Context, actor *models.User, amount float64, description string, date time.Time) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", common.ErrorInvalidArgument)
	}
	if len(description) > maxDescriptionLength {
		return nil, fmt.Errorf("%w: description must be at most %d characters", common.ErrorInvalidArgument, maxDescriptionLength)
	}

	repo := s.repomanager.Transactions(s.db)
	tr, err := repo.Create(ctx, &models.Transaction{
		UserID:      actor.ID,
		Amount:      amount,
		Description: description,
		Date:        date,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating transaction: %w", err)
	}
	return tr, nil
}

// List returns transactions newest-first. Admins see every user's rows;
// everyone else only their own. The filter is optional.
func (s *TransactionService) List(ctx context.Context, actor *models.User, filter *models.TransactionFilter) ([]*models.Transaction, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	ownerID := actor.ID
	if auth.CanAccess(actor.Role, actor.ID, "", auth.OpListAll) {
		ownerID = ""
	}

	repo := s.repomanager.Transactions(s.db)
	list, err := repo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}
	return list, nil
}

// Get fetches one transaction. Absent rows yield common.ErrorNotFound before
// any ownership check; rows owned by someone else yield common.ErrForbidden.
func (s *TransactionService) Get(ctx context.Context, actor *models.User, id string) (*models.Transaction, error) {
	return fetchTransactionForAccess(ctx, s.repomanager.Transactions(s.db), actor, id, auth.OpRead)
}

// Update applies the non-nil patch fields to a transaction the actor may
// modify, then persists the result.
func (s *TransactionService) Update(ctx context.Context, actor *models.User, id string, patch *models.TransactionPatch) (*models.Transaction, error) {
	tr, err := fetchTransactionForAccess(ctx, s.repomanager.Transactions(s.db), actor, id, auth.OpUpdate)
	if err != nil {
		return nil, err
	}

	if patch.Amount != nil {
		if *patch.Amount <= 0 {
			return nil, fmt.Errorf("%w: amount must be positive", common.ErrorInvalidArgument)
		}
		tr.Amount = *patch.Amount
	}
	if patch.Description != nil {
		if len(*patch.Description) > maxDescriptionLength {
			return nil, fmt.Errorf("%w: description must be at most %d characters", common.ErrorInvalidArgument, maxDescriptionLength)
		}
		tr.Description = *patch.Description
	}
	if patch.Date != nil {
		tr.Date = *patch.Date
	}

	repo := s.repomanager.Transactions(s.db)
	if err := repo.Update(ctx, tr); err != nil {
		return nil, fmt.Errorf("error updating transaction: %w", err)
	}
	return tr, nil
}

// Delete removes a transaction the actor may modify.
func (s *TransactionService) Delete(ctx context.Context, actor *models.User, id string) error {
	if _, err := fetchTransactionForAccess(ctx, s.repomanager.Transactions(s.db), actor, id, auth.OpDelete); err != nil {
		return err
	}

	repo := s.repomanager.Transactions(s.db)
	if err := repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting transaction: %w", err)
	}
	return nil
}

// fetchTransactionForAccess loads the transaction and enforces the ownership
// rule. Absent rows yield ErrorNotFound, rows owned by someone else yield
// ErrForbidden. The order matters: a foreign id reports 403, not 404.
func fetchTransactionForAccess(ctx context.Context, repo transactions.Repository, actor *models.User, id string, op auth.Operation) (*models.Transaction, error) {
	tr, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error getting transaction: %w", err)
	}
	if !auth.CanAccess(actor.Role, actor.ID, tr.UserID, op) {
		return nil, common.ErrForbidden
	}
	return tr, nil
}

func validateFilter(filter *models.TransactionFilter) error {
	if filter == nil {
		return nil
	}
	if len(filter.Query) > maxDescriptionLength {
		return fmt.Errorf("%w: q must be at most %d characters", common.ErrorInvalidArgument, maxDescriptionLength)
	}
	if filter.MinAmount != nil && *filter.MinAmount <= 0 {
		return fmt.Errorf("%w: min_amount must be positive", common.ErrorInvalidArgument)
	}
	if filter.MaxAmount != nil && *filter.MaxAmount <= 0 {
		return fmt.Errorf("%w: max_amount must be positive", common.ErrorInvalidArgument)
	}
	return nil
}
