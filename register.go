package auth

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
)

// RegisterUserMessage is the registration payload. Class and Semester are
// required only for the student role.
type RegisterUserMessage struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Class    string `json:"class"`
	Semester string `json:"semester"`
}

func (e RegisterUserMessage) Type() string { return "user.register" }

// Validate runs the ordered payload checks: required fields first, then the
// role-conditional student fields. Store access only happens after both pass.
func (e RegisterUserMessage) Validate() error {
	err := validation.ValidateStruct(&e,
		validation.Field(&e.UserID, validation.Required),
		validation.Field(&e.Password, validation.Required),
		validation.Field(&e.Name, validation.Required),
		validation.Field(&e.Email, validation.Required),
		validation.Field(&e.Role, validation.Required),
	)
	if err != nil {
		return ErrMissingRequiredFields
	}

	if UserRole(e.Role) == RoleStudent {
		if strings.TrimSpace(e.Class) == "" || strings.TrimSpace(e.Semester) == "" {
			return ErrStudentFieldsRequired
		}
	}

	return nil
}

// RegisterUserHandler validates a registration, checks uniqueness against the
// credential store, hashes the password, and persists the new user.
type RegisterUserHandler struct {
	store    CredentialStore
	hashCost int
	logger   Logger
}

func NewRegisterUserHandler(store CredentialStore) *RegisterUserHandler {
	return &RegisterUserHandler{
		store:    store,
		hashCost: DefaultHashCost,
		logger:   defLogger{},
	}
}

func (h *RegisterUserHandler) WithLogger(logger Logger) *RegisterUserHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *RegisterUserHandler) WithHashCost(cost int) *RegisterUserHandler {
	if cost > 0 {
		h.hashCost = cost
	}
	return h
}

// Execute runs the registration flow and returns the created user. The
// returned record is only ever serialized through its Profile projection.
func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}

	existing, err := h.store.FindByUserIDOrEmail(ctx, event.UserID, event.Email)
	if err != nil && !IsRecordNotFound(err) {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check for existing user")
	}
	if existing != nil {
		h.logger.Info("registration rejected, user exists: %s", event.UserID)
		return nil, ErrUserAlreadyExists
	}

	hash, err := HashPasswordWithCost(event.Password, h.hashCost)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) && richErr.Category == goerrors.CategoryValidation {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		UserID:       strings.TrimSpace(event.UserID),
		PasswordHash: hash,
		Name:         event.Name,
		Email:        strings.TrimSpace(event.Email),
		Role:         UserRole(event.Role),
		Class:        event.Class,
		Semester:     event.Semester,
	}

	created, err := h.store.Create(ctx, user)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not create user")
	}

	h.logger.Info("user registered: %s role=%s", created.UserID, created.Role)

	return created, nil
}
