package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const identityKey contextKey = "identity"

// ErrIdentityNotFound is returned when no Identity exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrIdentityNotFound = errors.New("identity not found in context")

// Identity is the authenticated principal attached to a request, resolved from
// either the dashboard session cookie or a mobile bearer token.
type Identity struct {
	UserID uuid.UUID
	Role   string // "admin", "supervisor", "installer"
	Name   string
}

// IdentityFromCtx extracts the authenticated identity from the request context.
// Returns ErrIdentityNotFound if none is set (unauthenticated request).
func IdentityFromCtx(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok || id.UserID == uuid.Nil {
		return Identity{}, ErrIdentityNotFound
	}
	return id, nil
}

// WithIdentity returns a new context with the given identity attached.
// Used by authentication middleware after validating the session or token.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// ActorFromCtx returns the display name of the authenticated principal, or ""
// for unauthenticated requests. Used to attribute history rows.
func ActorFromCtx(ctx context.Context) string {
	id, err := IdentityFromCtx(ctx)
	if err != nil {
		return ""
	}
	return id.Name
}
