package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	// TextCodeMissingFields identifies incomplete registration payloads
	TextCodeMissingFields = "MISSING_REQUIRED_FIELDS"
	// TextCodeStudentFields identifies student payloads without class/semester
	TextCodeStudentFields = "STUDENT_FIELDS_REQUIRED"
	// TextCodeMissingCredentials identifies login payloads without id or password
	TextCodeMissingCredentials = "MISSING_CREDENTIALS"
	// TextCodeUserExists identifies uniqueness violations on user_id or email
	TextCodeUserExists = "USER_ALREADY_EXISTS"
	// TextCodeInvalidCreds identifies failed credential verification
	TextCodeInvalidCreds = "INVALID_CREDENTIALS"
	// TextCodeNoToken identifies requests without a bearer token
	TextCodeNoToken = "NO_TOKEN"
	// TextCodeTokenExpired identifies tokens past their expiry
	TextCodeTokenExpired = "TOKEN_EXPIRED"
	// TextCodeTokenMalformed identifies unparsable or badly signed tokens
	TextCodeTokenMalformed = "TOKEN_MALFORMED"
	// TextCodeMissingSecret identifies a deployment without a signing secret
	TextCodeMissingSecret = "MISSING_SIGNING_SECRET"
	// TextCodeEmptyPassword identifies an empty plaintext handed to the hasher
	TextCodeEmptyPassword = "EMPTY_PASSWORD"
)

// ErrMissingRequiredFields is returned when a registration payload is incomplete.
var ErrMissingRequiredFields = errors.New("All fields required", errors.CategoryValidation).
	WithTextCode(TextCodeMissingFields).
	WithCode(errors.CodeBadRequest)

// ErrStudentFieldsRequired is returned when a student registers without class or semester.
var ErrStudentFieldsRequired = errors.New("Class and semester required for students", errors.CategoryValidation).
	WithTextCode(TextCodeStudentFields).
	WithCode(errors.CodeBadRequest)

// ErrMissingCredentials is returned when a login payload lacks user id or password.
var ErrMissingCredentials = errors.New("User ID and password required", errors.CategoryValidation).
	WithTextCode(TextCodeMissingCredentials).
	WithCode(errors.CodeBadRequest)

// ErrUserAlreadyExists is returned when user_id or email collides with an
// existing record. The original portal answered 400 rather than 409; wire
// compatibility keeps it that way.
var ErrUserAlreadyExists = errors.New("User already exists", errors.CategoryConflict).
	WithTextCode(TextCodeUserExists).
	WithCode(errors.CodeBadRequest)

// ErrInvalidCredentials covers both an unknown user id and a wrong password.
// The message never distinguishes the two cases.
var ErrInvalidCredentials = errors.New("Invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrMismatchedHashAndPassword is the hasher-level mismatch. Flows translate
// it to ErrInvalidCredentials before it reaches a client.
var ErrMismatchedHashAndPassword = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrNoToken is returned when the Authorization header carries no bearer token.
var ErrNoToken = errors.New("No token provided", errors.CategoryAuth).
	WithTextCode(TextCodeNoToken).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when a well formed token is past its expiry.
var ErrTokenExpired = errors.New("Token expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when a token is unparsable or its signature
// does not verify.
var ErrTokenMalformed = errors.New("Invalid token", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrMissingSigningSecret is a deployment error, not a client error: the
// process has no signing secret configured.
var ErrMissingSigningSecret = errors.New("Server configuration error", errors.CategoryInternal).
	WithTextCode(TextCodeMissingSecret).
	WithCode(errors.CodeInternal)

// ErrNoEmptyPassword is returned by the hasher for empty plaintexts.
var ErrNoEmptyPassword = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(errors.CodeBadRequest)

// IsTokenExpiredError will check for expired tokens, including raw errors
// coming straight from the jwt library.
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}

	var rich *errors.Error
	if errors.As(err, &rich) && rich.TextCode == TextCodeTokenExpired {
		return true
	}

	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for malformed token errors
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}

	var rich *errors.Error
	if errors.As(err, &rich) && rich.TextCode == TextCodeTokenMalformed {
		return true
	}

	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
