// Package services holds the server's business logic between the HTTP
// handlers and the repositories. This file implements UserService: login,
// user registration, and the one-time bootstrap of the admin account.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"

	"github.com/ledgerkeeper/ledgerkeeper/internal/common"
	"github.com/ledgerkeeper/ledgerkeeper/internal/dbx"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/auth"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/config"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/models"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/repositories/repomanager"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
)

// UserService provides account-related operations:
// - Login: verify credentials and mint an access token
// - Register: create users (admin role requires an admin actor)
// - GetByEmail: resolve a token subject back to a live account
// - EnsureBootstrapAdmin: create the configured admin once, if absent
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	hasher        *auth.PasswordHasher
	tokens        *auth.TokenService
	authenticator *auth.Authenticator
	adminEmail    string
	adminPassword string
}

// NewUserService constructs a UserService using repositories, the credential
// core, and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.PasswordHasher, tokens *auth.TokenService, cfg *config.Config) (*UserService, error) {
	authenticator, err := auth.NewAuthenticator(m.Users(db), hasher)
	if err != nil {
		return nil, fmt.Errorf("init authenticator: %w", err)
	}
	return &UserService{
		db:            db,
		repomanager:   m,
		hasher:        hasher,
		tokens:        tokens,
		authenticator: authenticator,
		adminEmail:    cfg.AdminEmail,
		adminPassword: cfg.AdminPassword,
	}, nil
}

// Login verifies the email/password pair and returns a signed access token.
// Failed verification yields common.ErrInvalidCredentials regardless of
// whether the account exists.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}
	token, err := s.tokens.Issue(user.Email, user.Role)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Register creates a new account. Requesting the admin role is allowed only
// when actor is an admin. A taken email yields common.ErrorConflict.
func (s *UserService) Register(ctx context.Context, actor *models.User, email, password string, role models.Role) (*models.User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", common.ErrorInvalidArgument, role)
	}
	if role == models.RoleAdmin && (actor == nil || actor.Role != models.RoleAdmin) {
		return nil, common.ErrForbidden
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: hash, Role: role})
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

// GetByEmail resolves an account by email. An absent account yields
// common.ErrUnauthenticated so that tokens for deleted users stop working.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnauthenticated
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, nil
}

// EnsureBootstrapAdmin creates the admin account from config when no admin
// exists yet. Runs at startup; the count and insert share a transaction, and
// a concurrent duplicate insert is treated as success.
func (s *UserService) EnsureBootstrapAdmin(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		count, err := repo.CountByRole(ctx, models.RoleAdmin)
		if err != nil {
			return fmt.Errorf("error counting admins: %w", err)
		}
		if count > 0 {
			return nil
		}

		hash, err := s.hasher.Hash(s.adminPassword)
		if err != nil {
			return fmt.Errorf("error hashing password: %w", err)
		}

		_, err = repo.Create(ctx, &models.User{Email: s.adminEmail, PasswordHash: hash, Role: models.RoleAdmin})
		if err != nil && !errors.Is(err, common.ErrorConflict) {
			return fmt.Errorf("error creating admin: %w", err)
		}
		return nil
	})
}

// --- validation helpers ---

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: email is not valid", common.ErrorInvalidArgument)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return fmt.Errorf("%w: password must be between %d and %d characters",
			common.ErrorInvalidArgument, minPasswordLength, maxPasswordLength)
	}
	return nil
}
