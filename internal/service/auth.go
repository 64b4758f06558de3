package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dlalic/unpacking/internal/logger"
	"github.com/dlalic/unpacking/internal/model"
	"github.com/dlalic/unpacking/internal/security"
)

type Auth struct {
	userStore    model.UserStore
	hasher       *security.Hasher
	tokenManager model.TokenManager
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher *security.Hasher,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// TokenResult is a freshly issued token together with who it was issued to.
type TokenResult struct {
	UserID uuid.UUID
	Token  string
	Role   model.Role
}

// Authenticate verifies the password for the given email and issues a token.
// Unknown emails and wrong passwords are indistinguishable to the caller:
// both surface as model.ErrNotFound.
func (a *Auth) Authenticate(ctx context.Context, email, password string) (TokenResult, error) {
	a.logger.Debug("Auth service: authenticating user", "email", email)

	creds, err := a.userStore.GetCredentialsByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			a.logger.Error("Auth service: failed to get credentials",
				"email", email,
				"error", err.Error())
		}
		return TokenResult{}, err
	}

	if err := a.hasher.Verify(password, creds.PasswordHash); err != nil {
		if errors.Is(err, security.ErrMismatch) {
			a.logger.Info("Auth service: password mismatch", "email", email)
			return TokenResult{}, model.ErrNotFound
		}
		return TokenResult{}, fmt.Errorf("failed to verify password: %w", err)
	}

	token, err := a.tokenManager.Generate(creds.UserID, creds.Role)
	if err != nil {
		a.logger.Error("Auth service: failed to generate token",
			"user_id", creds.UserID,
			"error", err.Error())
		return TokenResult{}, fmt.Errorf("failed to generate token: %w", err)
	}

	a.logger.Info("Auth service: user authenticated", "user_id", creds.UserID)

	return TokenResult{UserID: creds.UserID, Token: token, Role: creds.Role}, nil
}
