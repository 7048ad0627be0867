package auth

import (
	"context"
	"strings"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the credential store adapter backed by the portal's user table
type Users interface {
	repository.Repository[*User]

	FindByUserID(ctx context.Context, userID string) (*User, error)
	FindByUserIDTx(ctx context.Context, tx bun.IDB, userID string) (*User, error)
	FindByUserIDOrEmail(ctx context.Context, userID, email string) (*User, error)
	FindByUserIDOrEmailTx(ctx context.Context, tx bun.IDB, userID, email string) (*User, error)
	Create(ctx context.Context, record *User, criteria ...repository.InsertCriteria) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *User, criteria ...repository.InsertCriteria) (*User, error)
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users                        = (*users)(nil)
	_ repository.Repository[*User] = (*users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "user_id"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) FindByUserID(ctx context.Context, userID string) (*User, error) {
	return a.FindByUserIDTx(ctx, a.db, userID)
}

func (a *users) FindByUserIDTx(ctx context.Context, tx bun.IDB, userID string) (*User, error) {
	record := &User{}

	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.user_id = ?", strings.TrimSpace(userID)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"user_id": userID,
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *users) FindByUserIDOrEmail(ctx context.Context, userID, email string) (*User, error) {
	return a.FindByUserIDOrEmailTx(ctx, a.db, userID, email)
}

func (a *users) FindByUserIDOrEmailTx(ctx context.Context, tx bun.IDB, userID, email string) (*User, error) {
	record := &User{}

	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.user_id = ?", strings.TrimSpace(userID)).
		WhereOr("?TableAlias.email = ?", strings.TrimSpace(email)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"user_id": userID,
					"email":   email,
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *users) Create(ctx context.Context, record *User, criteria ...repository.InsertCriteria) (*User, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *users) CreateTx(ctx context.Context, tx bun.IDB, record *User, criteria ...repository.InsertCriteria) (*User, error) {
	prepareUserDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

// IsRecordNotFound reports whether err is the store's not-found failure
func IsRecordNotFound(err error) bool {
	return repository.IsRecordNotFound(err)
}

// NewCredentialStore adapts the bun-backed Users repository to the
// CredentialStore seam the registration and login flows consume. The
// repository's Create takes insert criteria the flows never supply.
func NewCredentialStore(users Users) CredentialStore {
	return &credentialStore{users: users}
}

type credentialStore struct {
	users Users
}

var _ CredentialStore = (*credentialStore)(nil)

func (s *credentialStore) FindByUserID(ctx context.Context, userID string) (*User, error) {
	return s.users.FindByUserID(ctx, userID)
}

func (s *credentialStore) FindByUserIDOrEmail(ctx context.Context, userID, email string) (*User, error) {
	return s.users.FindByUserIDOrEmail(ctx, userID, email)
}

func (s *credentialStore) Create(ctx context.Context, record *User) (*User, error) {
	return s.users.Create(ctx, record)
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	record.UserID = strings.TrimSpace(record.UserID)
	record.Email = strings.TrimSpace(record.Email)
}
