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

type User struct {
	userStore model.UserStore
	hasher    *security.Hasher
	logger    *logger.Logger
}

func NewUser(userStore model.UserStore, hasher *security.Hasher, logger *logger.Logger) *User {
	return &User{
		userStore: userStore,
		hasher:    hasher,
		logger:    logger,
	}
}

func (s *User) Create(ctx context.Context, name, email string, role model.Role, password string) (uuid.UUID, error) {
	s.logger.Debug("User service: creating user", "email", email, "role", role)

	user := model.NewUser(name, email, role)
	id, err := s.userStore.Create(ctx, user, s.hasher.Hash(password))
	if err != nil {
		if !errors.Is(err, model.ErrAlreadyExists) {
			s.logger.Error("User service: failed to create user",
				"email", email,
				"error", err.Error())
		}
		return uuid.Nil, err
	}

	s.logger.Info("User service: user created", "user_id", id)

	return id, nil
}

func (s *User) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	return s.userStore.GetByID(ctx, id)
}

func (s *User) List(ctx context.Context) ([]model.User, error) {
	return s.userStore.List(ctx)
}

func (s *User) Update(ctx context.Context, id uuid.UUID, name, email string, role model.Role) error {
	if err := s.userStore.Update(ctx, id, name, email, role); err != nil {
		if !errors.Is(err, model.ErrAlreadyExists) {
			s.logger.Error("User service: failed to update user",
				"user_id", id,
				"error", err.Error())
		}
		return err
	}
	return nil
}

// Delete flags the user as deleted; the row and its password stay.
func (s *User) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userStore.Delete(ctx, id); err != nil {
		s.logger.Error("User service: failed to delete user",
			"user_id", id,
			"error", err.Error())
		return err
	}

	s.logger.Info("User service: user deleted", "user_id", id)

	return nil
}

// EnsureAdmin creates the administrator account unless one already exists
// under the configured email. A unique violation on the insert means another
// instance won the bootstrap race, which is just as good as winning it.
func (s *User) EnsureAdmin(ctx context.Context, email, password string) error {
	s.logger.Debug("User service: ensuring admin account", "email", email)

	_, err := s.userStore.GetCredentialsByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to look up admin account: %w", err)
	}

	_, err = s.Create(ctx, "Admin", email, model.RoleAdmin, password)
	if errors.Is(err, model.ErrAlreadyExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	s.logger.Info("User service: admin account created", "email", email)

	return nil
}
