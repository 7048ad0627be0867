package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the signed payload embedded in a session token. Claims are
// signed, never encrypted: nothing secret goes in here.
type SessionClaims struct {
	jwt.RegisteredClaims
	UID      string   `json:"user_id,omitempty"`
	UserRole UserRole `json:"role,omitempty"`
	UserName string   `json:"name,omitempty"`
}

// UserID returns the portal user id, falling back to the subject claim
func (c *SessionClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.RegisteredClaims.Subject
}

// Role returns the portal role baked into the token
func (c *SessionClaims) Role() UserRole {
	return c.UserRole
}

// Name returns the display name baked into the token
func (c *SessionClaims) Name() string {
	return c.UserName
}

// Expires returns the expiration time
func (c *SessionClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *SessionClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// Identity derives the per-request identity attached by the guard. It lives
// only as long as the request that carried the token.
func (c *SessionClaims) Identity() *AuthenticatedIdentity {
	return &AuthenticatedIdentity{
		UserID: c.UserID(),
		Role:   c.UserRole,
		Name:   c.UserName,
	}
}

// AuthenticatedIdentity is the request-scoped identity derived from verified
// claims. The guard attaches it; handlers read it.
type AuthenticatedIdentity struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	Name   string   `json:"name"`
}

// IsAtLeast checks the identity's role against a minimum required role
func (a *AuthenticatedIdentity) IsAtLeast(minRole UserRole) bool {
	return a.Role.IsAtLeast(minRole)
}
