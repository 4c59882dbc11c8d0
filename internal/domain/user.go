package domain

import (
	"context"
	"time"
)

// Role is the access level assigned to a user account.
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

type User struct {
	ID               int       `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Role             Role      `json:"role"`
	RegistrationDate time.Time `json:"registration_date"`
	APIKey           string    `json:"api_key"`
}

// UserRepository abstracts user persistence.
type UserRepository interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id int) (*User, error)
	// Create assigns the next id and stores the user.
	Create(ctx context.Context, user User) (*User, error)
	// Save replaces an existing user, returning ErrUserNotFound if absent.
	Save(ctx context.Context, user User) error
	Delete(ctx context.Context, id int) error
}
