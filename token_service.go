package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// DefaultTokenExpiration is the session TTL in hours
const DefaultTokenExpiration = 24

// TokenService signs and validates session tokens with a shared HS256 secret
type TokenService struct {
	signingKey      []byte
	tokenExpiration int
	issuer          string
	logger          Logger
}

var _ TokenIssuer = (*TokenService)(nil)

// NewTokenService creates a new TokenService. An empty signing key is a
// configuration error: the process must refuse to issue tokens, so the
// constructor fails rather than deferring the check to the first request.
func NewTokenService(signingKey []byte, tokenExpiration int, issuer string, logger Logger) (*TokenService, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningSecret
	}

	if tokenExpiration <= 0 {
		tokenExpiration = DefaultTokenExpiration
	}

	if logger == nil {
		logger = defLogger{}
	}

	return &TokenService{
		signingKey:      signingKey,
		tokenExpiration: tokenExpiration,
		issuer:          issuer,
		logger:          logger,
	}, nil
}

// Issue creates a signed session token for the given user. Claims carry
// identity and role only; the password hash never enters a token.
func (ts *TokenService) Issue(user *User) (string, error) {
	if ts == nil || len(ts.signingKey) == 0 {
		return "", ErrMissingSigningSecret
	}

	now := time.Now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    ts.issuer,
			Subject:   user.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ts.tokenExpiration) * time.Hour)),
		},
		UID:      user.UserID,
		UserRole: user.Role,
		UserName: user.Name,
	}

	return ts.SignClaims(claims)
}

// SignClaims signs arbitrary session claims using the configured signing key.
func (ts *TokenService) SignClaims(claims *SessionClaims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign session token")
	}

	return signedString, nil
}

// Validate parses and validates a token string, returning structured claims.
// Failures are exactly one of: ErrTokenExpired, ErrTokenMalformed, or
// ErrMissingSigningSecret. An expired but well formed token is always
// reported expired, never malformed.
func (ts *TokenService) Validate(tokenString string) (*SessionClaims, error) {
	if ts == nil || len(ts.signingKey) == 0 {
		return nil, ErrMissingSigningSecret
	}

	parserOptions := make([]jwt.ParserOption, 0, 2)
	parserOptions = append(parserOptions, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method: %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode).
			WithCode(errors.CodeUnauthorized)
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService validate could not decode or validate claims")
	return nil, ErrTokenMalformed
}
