// Package models holds the rows the server persists, as Go structs.
package models

import "time"

// Role is the authorization role attached to a user account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a stored identity. PasswordHash is opaque to every layer except the
// password hasher and must never appear in logs or API responses.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
