package user

import (
	"context"
	"slices"
)

/*
* The user package lives under internal so only this module can build identities.
* Domain packages never see it: the HTTP layer resolves the requester and passes
* a plain user id down.
 */

// Capability is a permission granted to a user
type Capability string

const (
	// CanManageCirculation allows renewing loans and listing every borrower's loans
	CanManageCirculation Capability = "can_manage_circulation"
	// CanManageCatalog allows creating, editing and deleting catalog records
	CanManageCatalog Capability = "can_manage_catalog"
)

// User is the authenticated requester
type User struct {
	ID           string
	Capabilities []Capability
}

// Has reports whether the user was granted c
func (u User) Has(c Capability) bool {
	return slices.Contains(u.Capabilities, c)
}

type contextKey struct{}

// WithUser returns a context carrying u
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// FromContext returns the authenticated user, ok is false for anonymous requests
func FromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(contextKey{}).(User)
	return u, ok
}
