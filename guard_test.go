package auth_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/campushub/portal-auth"
)

func guardedApp(tokens auth.TokenIssuer) *fiber.App {
	app := fiber.New()
	app.Get("/protected", auth.RequireAuthWithLogger(tokens, noopLogger{}), func(c *fiber.Ctx) error {
		identity, _ := auth.IdentityFromRequest(c)
		return c.JSON(fiber.Map{"user": identity})
	})
	return app
}

func doGuardRequest(t *testing.T, app *fiber.App, authorization string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &body))

	return resp.StatusCode, body
}

func TestGuardRejectsMissingToken(t *testing.T) {
	app := guardedApp(newTestTokenService(t))

	tests := []struct {
		name          string
		authorization string
	}{
		{name: "no header", authorization: ""},
		{name: "empty header", authorization: " "},
		{name: "wrong scheme", authorization: "Basic dXNlcjpwdw=="},
		{name: "bearer without token", authorization: "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doGuardRequest(t, app, tt.authorization)

			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, "No token provided", body["error"])
		})
	}
}

func TestGuardRejectsExpiredToken(t *testing.T) {
	tokens := newTestTokenService(t)
	app := guardedApp(tokens)

	now := time.Now()
	claims := &auth.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "S101",
			Issuer:    "campus-portal",
			IssuedAt:  jwt.NewNumericDate(now.Add(-25 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
		UID:      "S101",
		UserRole: auth.RoleStudent,
		UserName: "A",
	}

	expired, err := tokens.SignClaims(claims)
	require.NoError(t, err)

	status, body := doGuardRequest(t, app, "Bearer "+expired)

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Token expired", body["error"])
}

func TestGuardRejectsMalformedToken(t *testing.T) {
	tokens := newTestTokenService(t)
	app := guardedApp(tokens)

	t.Run("garbage token", func(t *testing.T) {
		status, body := doGuardRequest(t, app, "Bearer not.a.token")

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Invalid token", body["error"])
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other, err := auth.NewTokenService([]byte("other-secret"), 24, "campus-portal", noopLogger{})
		require.NoError(t, err)

		token, err := other.Issue(&auth.User{UserID: "S101", Name: "A", Role: auth.RoleStudent})
		require.NoError(t, err)

		status, body := doGuardRequest(t, app, "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Invalid token", body["error"])
	})
}

func TestGuardConfigError(t *testing.T) {
	t.Run("nil token service", func(t *testing.T) {
		app := guardedApp(nil)

		status, body := doGuardRequest(t, app, "Bearer whatever")

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "Server configuration error", body["error"])
	})

	t.Run("typed-nil token service behind the interface", func(t *testing.T) {
		app := guardedApp((*auth.TokenService)(nil))

		// Misconfiguration must win even when no token was sent
		status, body := doGuardRequest(t, app, "")

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "Server configuration error", body["error"])
	})
}

func TestGuardAttachesIdentity(t *testing.T) {
	tokens := newTestTokenService(t)
	app := guardedApp(tokens)

	token, err := tokens.Issue(&auth.User{
		UserID: "S101",
		Name:   "A",
		Email:  "a@x.com",
		Role:   auth.RoleStudent,
	})
	require.NoError(t, err)

	status, body := doGuardRequest(t, app, "Bearer "+token)

	require.Equal(t, http.StatusOK, status)

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "S101", user["user_id"])
	assert.Equal(t, "student", user["role"])
	assert.Equal(t, "A", user["name"])
}
