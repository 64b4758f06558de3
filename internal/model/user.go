package model

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role enumerates user roles. The literals are stored as-is in the role_enum
// database column and serialized as-is in JSON and JWT claims.
type Role string

const (
	// RoleUser is a regular account.
	RoleUser Role = "User"
	// RoleAdmin may manage users, terms and snippets.
	RoleAdmin Role = "Admin"
)

// ParseRole checks s against the declared roles.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleUser, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// UserStore defines persistence operations for users and their passwords.
type UserStore interface {
	Create(ctx context.Context, user User, passwordHash string) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetCredentialsByEmail(ctx context.Context, email string) (Credentials, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id uuid.UUID, name, email string, role Role) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// User represents an account. Deletion is logical: IsDeleted flips to true
// and the row (and its password row) stays for history.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Role      Role
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser builds a user with a fresh id and timestamps.
func NewUser(name, email string, role Role) User {
	now := time.Now()
	return User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Credentials is the projection used to authenticate: the live user's id and
// role plus the stored password hash.
type Credentials struct {
	UserID       uuid.UUID
	Role         Role
	PasswordHash string
}
