package users

import (
	"context"

	"github.com/ledgerkeeper/ledgerkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	CountByRole(ctx context.Context, role models.Role) (int64, error)
}
