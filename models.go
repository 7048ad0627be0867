package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the credential record persisted by the portal's user store. The
// uuid primary key is store-owned; UserID is the portal identifier chosen at
// registration and never regenerated.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"-"`
	UserID        string     `bun:"user_id,notnull,unique" json:"user_id"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Name          string     `bun:"name,notnull" json:"name"`
	Email         string     `bun:"email,notnull,unique" json:"email"`
	Role          UserRole   `bun:"role,notnull" json:"role"`
	Class         string     `bun:"class" json:"class,omitempty"`
	Semester      string     `bun:"semester" json:"semester,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Profile is the public projection of a user record. It is the only user
// shape that crosses the HTTP boundary; the password hash has no field here.
type Profile struct {
	UserID   string   `json:"user_id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
	Class    string   `json:"class,omitempty"`
	Semester string   `json:"semester,omitempty"`
}

// Profile returns the public projection of the user
func (u *User) Profile() Profile {
	return Profile{
		UserID:   u.UserID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		Class:    u.Class,
		Semester: u.Semester,
	}
}
