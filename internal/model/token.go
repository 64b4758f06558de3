package model

import (
	"context"

	"github.com/google/uuid"
)

// TokenManager signs and verifies authentication tokens.
type TokenManager interface {
	Generate(userID uuid.UUID, role Role) (string, error)
	Parse(token string) (*AuthData, error)
}

// AuthData is the verified content of a token: who the subject is and what
// role they carry.
type AuthData struct {
	UserID uuid.UUID
	Role   Role
}

// ContextManager moves verified auth data in and out of request contexts.
type ContextManager interface {
	SetAuthToContext(ctx context.Context, auth *AuthData) context.Context
	GetAuthFromContext(ctx context.Context) (*AuthData, bool)
}
