// Package authz holds the reusable ownership predicate every owner-scoped
// mutation checks before touching a resource. Authentication (who is calling)
// is the session guard's job; this answers only "may they touch this".
package authz

import "github.com/google/uuid"

// IsOwner reports whether the authenticated user owns the resource with the
// given owner reference. Pure identifier equality, no side effects.
func IsOwner(userID, ownerID uuid.UUID) bool {
	return userID == ownerID
}
