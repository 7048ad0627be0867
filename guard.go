package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// RequireAuth returns the authorization guard: a middleware that admits a
// request only when it carries a valid bearer token, attaching the derived
// identity to the request on success.
//
// The guard trusts the token signature alone and never re-fetches the user,
// so a role change or deactivation between issuance and expiry is not
// reflected until the token expires. That is a documented limitation of the
// 24 hour session window, not something this middleware papers over.
func RequireAuth(tokens TokenIssuer) fiber.Handler {
	return RequireAuthWithLogger(tokens, defLogger{})
}

// RequireAuthWithLogger is RequireAuth with an explicit logger.
func RequireAuthWithLogger(tokens TokenIssuer, logger Logger) fiber.Handler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx) error {
		if !issuerConfigured(tokens) {
			logger.Error("authorization guard running without a configured token service")
			return respondError(c, ErrMissingSigningSecret, "Token verification failed")
		}

		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return respondError(c, ErrNoToken, "Token verification failed")
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			var rich *errors.Error
			if errors.As(err, &rich) {
				return respondError(c, rich, "Token verification failed")
			}
			return respondError(c, ErrTokenMalformed, "Token verification failed")
		}

		identity := claims.Identity()
		c.Locals(identityLocalKey, identity)
		c.SetUserContext(WithIdentity(c.UserContext(), identity))

		return c.Next()
	}
}

// issuerConfigured reports whether the guard holds a usable token issuer.
// A typed-nil TokenService is as unconfigured as a nil interface: the
// misconfiguration must be reported before the header is even inspected.
func issuerConfigured(tokens TokenIssuer) bool {
	if tokens == nil {
		return false
	}
	if ts, ok := tokens.(*TokenService); ok && ts == nil {
		return false
	}
	return true
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. A missing scheme or empty remainder yields "".
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
