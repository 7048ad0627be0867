package auth

import (
	"github.com/goliatone/go-errors"
	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt work factor used when no explicit cost is
// given. Keep it above 10: the portal's offline brute-force floor.
const DefaultHashCost = 12

// HashPassword will generate a salted password hash at the default cost
func HashPassword(password string) (string, error) {
	return HashPasswordWithCost(password, DefaultHashCost)
}

// HashPasswordWithCost will generate a salted password hash at the given
// bcrypt cost. Costs below bcrypt's minimum fall back to the default.
func HashPasswordWithCost(password string, cost int) (string, error) {
	if password == "" {
		return "", ErrNoEmptyPassword
	}

	if cost < bcrypt.MinCost {
		cost = DefaultHashCost
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	return string(h), nil
}

// ComparePasswordAndHash will validate the given cleartext password matches
// the hashed password. bcrypt owns the constant-time comparison guarantee.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return errors.Wrap(err, errors.CategoryAuth, "failed to compare password and hash")
	}
	return nil
}
