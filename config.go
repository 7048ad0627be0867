package auth

import (
	"os"
	"strconv"
)

// Config holds the process-wide authentication configuration. It is read
// once at startup and treated as read-only afterwards.
type Config struct {
	SigningSecret   string
	TokenExpiration int
	Issuer          string
	HashCost        int
}

// NewConfigFromEnv reads the auth configuration from the process environment.
// JWT_SECRET carries the signing secret; its absence is a deployment error
// surfaced by Validate, not a per-request error.
func NewConfigFromEnv() Config {
	cfg := Config{
		SigningSecret:   os.Getenv("JWT_SECRET"),
		TokenExpiration: DefaultTokenExpiration,
		Issuer:          os.Getenv("AUTH_ISSUER"),
		HashCost:        DefaultHashCost,
	}

	if raw := os.Getenv("AUTH_TOKEN_EXPIRATION"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			cfg.TokenExpiration = hours
		}
	}

	if raw := os.Getenv("AUTH_HASH_COST"); raw != "" {
		if cost, err := strconv.Atoi(raw); err == nil && cost > 0 {
			cfg.HashCost = cost
		}
	}

	return cfg
}

// Validate rejects configurations that must fail the process at startup.
func (c Config) Validate() error {
	if c.SigningSecret == "" {
		return ErrMissingSigningSecret
	}
	return nil
}

// GetSigningKey returns the shared HS256 secret as key material
func (c Config) GetSigningKey() []byte {
	return []byte(c.SigningSecret)
}

// GetTokenExpiration returns the session TTL in hours
func (c Config) GetTokenExpiration() int {
	if c.TokenExpiration <= 0 {
		return DefaultTokenExpiration
	}
	return c.TokenExpiration
}
