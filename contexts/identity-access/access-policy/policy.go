// Package accesspolicy resolves the calling principal into ownership and
// admin predicates shared by every lifecycle and settlement operation.
//
// The rule is uniform across all entity shapes: an operation succeeds when the
// caller is an admin OR the caller owns the resource's customer. Keeping the
// predicate here, instead of inlining role checks at each call site, keeps
// authorization consistent across operations.
package accesspolicy

import "strings"

// Require fails with ErrUnauthenticated when no caller is bound.
func Require(identity Identity) error {
	if !identity.IsAuthenticated() {
		return ErrUnauthenticated
	}
	return nil
}

// RequireAdmin allows only administrator callers through.
func RequireAdmin(identity Identity) error {
	if err := Require(identity); err != nil {
		return err
	}
	if !identity.Admin {
		return ErrPermissionDenied
	}
	return nil
}

// CanAccess reports whether the caller may act on a resource whose ownership
// chain resolves to ownerID.
func CanAccess(identity Identity, ownerID string) bool {
	if !identity.IsAuthenticated() {
		return false
	}
	return identity.Admin || identity.ID == strings.TrimSpace(ownerID)
}

// RequireAccess is the capability check consumed before reading or mutating
// another party's data.
func RequireAccess(identity Identity, ownerID string) error {
	if err := Require(identity); err != nil {
		return err
	}
	if !CanAccess(identity, ownerID) {
		return ErrPermissionDenied
	}
	return nil
}
