package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/campushub/portal-auth"
)

var testSigningKey = []byte("test-signing-key")

func newTestTokenService(t *testing.T) *auth.TokenService {
	t.Helper()
	service, err := auth.NewTokenService(testSigningKey, 24, "campus-portal", noopLogger{})
	require.NoError(t, err)
	return service
}

func TestNewTokenService(t *testing.T) {
	t.Run("creates token service", func(t *testing.T) {
		service, err := auth.NewTokenService(testSigningKey, 24, "campus-portal", noopLogger{})
		assert.NoError(t, err)
		assert.NotNil(t, service)
	})

	t.Run("creates token service with nil logger", func(t *testing.T) {
		service, err := auth.NewTokenService(testSigningKey, 24, "", nil)
		assert.NoError(t, err)
		assert.NotNil(t, service)
	})

	t.Run("empty signing key is a configuration error", func(t *testing.T) {
		service, err := auth.NewTokenService(nil, 24, "", noopLogger{})
		assert.Nil(t, service)
		assert.ErrorIs(t, err, auth.ErrMissingSigningSecret)
	})
}

func TestTokenServiceIssue(t *testing.T) {
	service := newTestTokenService(t)

	user := &auth.User{
		UserID: "S101",
		Name:   "A",
		Email:  "a@x.com",
		Role:   auth.RoleStudent,
	}

	t.Run("issue then validate round-trips the claims", func(t *testing.T) {
		token, err := service.Issue(user)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := service.Validate(token)
		require.NoError(t, err)

		assert.Equal(t, "S101", claims.UserID())
		assert.Equal(t, auth.RoleStudent, claims.Role())
		assert.Equal(t, "A", claims.Name())
	})

	t.Run("sets a 24 hour expiry", func(t *testing.T) {
		before := time.Now()
		token, err := service.Issue(user)
		require.NoError(t, err)

		claims, err := service.Validate(token)
		require.NoError(t, err)

		expectedExpiry := before.Add(24 * time.Hour)
		assert.True(t, claims.Expires().After(expectedExpiry.Add(-time.Second)))
		assert.True(t, claims.Expires().Before(time.Now().Add(24*time.Hour+time.Second)))
		assert.False(t, claims.IssuedAt().IsZero())
	})

	t.Run("claims never carry the password hash", func(t *testing.T) {
		withHash := &auth.User{
			UserID:       "S102",
			Name:         "B",
			Email:        "b@x.com",
			Role:         auth.RoleStudent,
			PasswordHash: "$2a$12$secret",
		}

		token, err := service.Issue(withHash)
		require.NoError(t, err)

		assert.NotContains(t, token, "secret")

		parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
		require.NoError(t, err)
		raw := parsed.Claims.(jwt.MapClaims)
		assert.NotContains(t, raw, "password_hash")
	})
}

func TestTokenServiceValidate(t *testing.T) {
	service := newTestTokenService(t)

	user := &auth.User{UserID: "S101", Name: "A", Role: auth.RoleStudent}

	t.Run("expired token yields Expired, never Malformed", func(t *testing.T) {
		now := time.Now()
		claims := &auth.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "S101",
				IssuedAt:  jwt.NewNumericDate(now.Add(-48 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(now.Add(-24 * time.Hour)),
				Issuer:    "campus-portal",
			},
			UID:      "S101",
			UserRole: auth.RoleStudent,
			UserName: "A",
		}

		token, err := service.SignClaims(claims)
		require.NoError(t, err)

		parsed, err := service.Validate(token)
		assert.Nil(t, parsed)
		assert.ErrorIs(t, err, auth.ErrTokenExpired)
		assert.True(t, auth.IsTokenExpiredError(err))
		assert.False(t, auth.IsMalformedError(err))
	})

	t.Run("token signed with another secret is malformed", func(t *testing.T) {
		other, err := auth.NewTokenService([]byte("a-different-secret"), 24, "campus-portal", noopLogger{})
		require.NoError(t, err)

		token, err := other.Issue(user)
		require.NoError(t, err)

		parsed, err := service.Validate(token)
		assert.Nil(t, parsed)
		assert.True(t, auth.IsMalformedError(err))
		assert.False(t, auth.IsTokenExpiredError(err))
	})

	t.Run("garbage token is malformed", func(t *testing.T) {
		parsed, err := service.Validate("not.a.token")
		assert.Nil(t, parsed)
		assert.True(t, auth.IsMalformedError(err))
	})

	t.Run("unexpected signing algorithm is rejected", func(t *testing.T) {
		none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "S101"})
		token, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		parsed, err := service.Validate(token)
		assert.Nil(t, parsed)
		assert.True(t, auth.IsMalformedError(err))
	})
}

func TestSessionClaimsIdentity(t *testing.T) {
	claims := &auth.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "S101"},
		UID:              "S101",
		UserRole:         auth.RoleStudent,
		UserName:         "A",
	}

	identity := claims.Identity()
	assert.Equal(t, "S101", identity.UserID)
	assert.Equal(t, auth.RoleStudent, identity.Role)
	assert.Equal(t, "A", identity.Name)

	assert.True(t, identity.IsAtLeast(auth.RoleStudent))
	assert.False(t, identity.IsAtLeast(auth.RoleAdmin))
}
