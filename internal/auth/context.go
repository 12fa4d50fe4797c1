package auth

import (
	"context"

	"github.com/bizdir/bizdirapi/internal/db/models"
)

// Principal captures the authenticated caller propagated through the request
// context. Absence of a principal is a distinct state from a guest-role
// principal: predicates that admit "any session" still reject anonymous
// callers.
type Principal struct {
	// ID references the backing users row.
	ID string
	// Name is the display name carried in the session.
	Name string
	// Email is populated when the user record was loaded during authn.
	Email string
	// Role drives all authorization decisions.
	Role models.Role
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool { return p.Role == models.RoleAdmin }

// IsManager reports whether the principal holds the manager role.
func (p Principal) IsManager() bool { return p.Role == models.RoleManager }

type principalContextKey struct{}

// SetPrincipalContext stores the authenticated principal on the context.
func SetPrincipalContext(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, principal)
}

// PrincipalFromContext retrieves the authenticated principal from the context.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalContextKey{}).(Principal)
	return principal, ok
}
