// Package auth implements the credential and authorization core: password
// hashing, access token issue/validation, credential verification, and the
// owner-or-admin access decision.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ledgerkeeper/ledgerkeeper/internal/logging"
)

// DefaultHashCost is the bcrypt work factor used in production.
const DefaultHashCost = 12

// bcrypt reads at most 72 bytes of input; truncate explicitly so longer
// secrets hash and verify consistently instead of erroring.
const maxSecretBytes = 72

// PasswordHasher wraps bcrypt with a fixed work factor. Every Hash call
// draws a fresh random salt, so equal secrets produce distinct hashes that
// both verify.
type PasswordHasher struct {
	cost int
	log  logging.Logger
}

// NewPasswordHasher returns a hasher with the given work factor.
// Non-positive cost selects DefaultHashCost; tests may pass bcrypt.MinCost
// to stay fast.
func NewPasswordHasher(cost int, log logging.Logger) *PasswordHasher {
	if cost <= 0 {
		cost = DefaultHashCost
	}
	return &PasswordHasher{cost: cost, log: log}
}

// Hash returns the salted hash of secret.
func (h *PasswordHasher) Hash(secret string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(truncateSecret(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether secret matches hash. It never fails outward: a
// malformed or truncated stored hash is logged and treated as a mismatch.
func (h *PasswordHasher) Verify(secret, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), truncateSecret(secret))
	if err == nil {
		return true
	}
	if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		h.log.Warn(context.Background(), "stored password hash is not comparable", "error", err)
	}
	return false
}

func truncateSecret(secret string) []byte {
	b := []byte(secret)
	if len(b) > maxSecretBytes {
		b = b[:maxSecretBytes]
	}
	return b
}
