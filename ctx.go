package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// identityLocalKey is where the guard parks the identity in fiber locals
const identityLocalKey = "auth_identity"

var identityCtxKey = &contextKey{"identity"}

type contextKey struct {
	name string
}

// WithIdentity sets the AuthenticatedIdentity in the given context
func WithIdentity(ctx context.Context, identity *AuthenticatedIdentity) context.Context {
	return context.WithValue(ctx, identityCtxKey, identity)
}

// IdentityFromContext finds the identity from the context.
func IdentityFromContext(ctx context.Context) (*AuthenticatedIdentity, bool) {
	raw, ok := ctx.Value(identityCtxKey).(*AuthenticatedIdentity)
	return raw, ok
}

// IdentityFromRequest extracts the identity the guard attached to a request
func IdentityFromRequest(c *fiber.Ctx) (*AuthenticatedIdentity, bool) {
	raw := c.Locals(identityLocalKey)
	if raw == nil {
		return nil, false
	}
	identity, ok := raw.(*AuthenticatedIdentity)
	return identity, ok
}
