package auth

import (
	"context"
	"strings"

	"github.com/goliatone/go-errors"
)

// Authenticator runs the login flow: validate input, fetch the user, verify
// the password, and issue a session token on success.
type Authenticator struct {
	store  CredentialStore
	tokens TokenIssuer
	logger Logger
}

// NewAuthenticator returns a new Authenticator. The token service carries the
// signing-secret precondition, so construction already implies a configured
// secret; Login still re-checks defensively before touching the store.
func NewAuthenticator(store CredentialStore, tokens TokenIssuer) *Authenticator {
	return &Authenticator{
		store:  store,
		tokens: tokens,
		logger: defLogger{},
	}
}

func (s *Authenticator) WithLogger(logger Logger) *Authenticator {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Login verifies the credentials and returns a signed session token plus the
// matching user record. An unknown user id and a wrong password fail with the
// same error: the response must not reveal whether the identifier exists.
func (s *Authenticator) Login(ctx context.Context, userID, password string) (string, *User, error) {
	// Config precondition first, before any store or hashing work, so a
	// broken deployment fails fast with no timing signal tied to either.
	if s.tokens == nil {
		s.logger.Error("Login attempted without a configured token service")
		return "", nil, ErrMissingSigningSecret
	}

	if strings.TrimSpace(userID) == "" || password == "" {
		return "", nil, ErrMissingCredentials
	}

	user, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		if IsRecordNotFound(err) {
			return "", nil, ErrInvalidCredentials
		}
		s.logger.Error("Login failed to fetch user: %s", err)
		return "", nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during login")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			return "", nil, ErrInvalidCredentials
		}
		s.logger.Error("Login failed to verify password: %s", err)
		return "", nil, errors.Wrap(err, errors.CategoryInternal, "failed to verify password during login")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error("Login failed to issue session token: %s", err)
		return "", nil, err
	}

	s.logger.Info("login successful: %s role=%s", user.UserID, user.Role)

	return token, user, nil
}
