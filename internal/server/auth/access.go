package auth

import "github.com/ledgerkeeper/ledgerkeeper/internal/server/models"

// Operation classifies what a requester wants to do with an owned resource.
type Operation string

const (
	OpRead    Operation = "read"
	OpUpdate  Operation = "update"
	OpDelete  Operation = "delete"
	OpListAll Operation = "list_all"
)

// CanAccess decides whether the requester may perform op on a resource owned
// by ownerID. Admins may do anything. Everyone else is limited to their own
// resources, and never to OpListAll (listings are scoped to the requester
// instead).
//
// The decision is pure: no I/O, recomputed per request, never cached.
func CanAccess(requesterRole models.Role, requesterID, ownerID string, op Operation) bool {
	if requesterRole == models.RoleAdmin {
		return true
	}
	if op == OpListAll {
		return false
	}
	return requesterID != "" && requesterID == ownerID
}
