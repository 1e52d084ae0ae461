// Package authz holds the caller identity and the static access policy for cinema operations.
package authz

import (
	"context"
	"strings"
)

// Role is the role claim carried by a caller.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// Identity is an already-authenticated caller.
type Identity struct {
	Subject string
	Role    Role
}

// Authenticated reports whether the identity names a caller.
func (i *Identity) Authenticated() bool {
	return i != nil && strings.TrimSpace(i.Subject) != ""
}

// IsAdmin reports whether the caller holds the administrator role.
func (i *Identity) IsAdmin() bool {
	return i.Authenticated() && i.Role == RoleAdmin
}

type identityKey struct{}

// WithIdentity returns a context carrying the caller identity.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFrom returns the caller identity, or nil when the request is anonymous.
func IdentityFrom(ctx context.Context) *Identity {
	if ctx == nil {
		return nil
	}
	identity, ok := ctx.Value(identityKey{}).(Identity)
	if !ok {
		return nil
	}
	return &identity
}
