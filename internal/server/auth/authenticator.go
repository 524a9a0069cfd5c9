package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/ledgerkeeper/ledgerkeeper/internal/common"
	"github.com/ledgerkeeper/ledgerkeeper/internal/server/models"
)

// UserLookup resolves stored identities by email. The users repository
// satisfies this.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Authenticator checks credentials against stored identities. Unknown email
// and wrong password produce the same error, and the unknown-email path still
// runs a hash comparison so elapsed time does not reveal which case occurred.
type Authenticator struct {
	users  UserLookup
	hasher *PasswordHasher

	// dummyHash is compared against when the email is unknown. Hashed from a
	// random secret at construction so no input ever matches it.
	dummyHash string
}

// NewAuthenticator constructs an Authenticator bound to a lookup source and
// a hasher.
func NewAuthenticator(users UserLookup, hasher *PasswordHasher) (*Authenticator, error) {
	secret, err := common.RandHex(32)
	if err != nil {
		return nil, fmt.Errorf("generate dummy secret: %w", err)
	}
	dummy, err := hasher.Hash(secret)
	if err != nil {
		return nil, fmt.Errorf("hash dummy secret: %w", err)
	}
	return &Authenticator{users: users, hasher: hasher, dummyHash: dummy}, nil
}

// Authenticate verifies the secret for the identity registered under email
// and returns the stored identity on success. Failures other than lookup
// faults are reported uniformly as ErrInvalidCredentials.
func (a *Authenticator) Authenticate(ctx context.Context, email, secret string) (*models.User, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			a.hasher.Verify(secret, a.dummyHash)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	if !a.hasher.Verify(secret, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}
	return user, nil
}
