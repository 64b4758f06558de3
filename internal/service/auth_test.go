package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dlalic/unpacking/internal/mocks"
	"github.com/dlalic/unpacking/internal/model"
	"github.com/dlalic/unpacking/internal/security"
	"github.com/dlalic/unpacking/internal/testutil"
)

func newTestHasher(t *testing.T) *security.Hasher {
	t.Helper()
	h, err := security.NewHasher("c29tZXNhbHR2YWx1ZQ")
	require.NoError(t, err)
	return h
}

func TestAuth_Authenticate_Success(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}
	tokMan := &mocks.TokenManager{}
	hasher := newTestHasher(t)
	userID := uuid.New()

	userStore.On("GetCredentialsByEmail", mock.Anything, "a@b.com").
		Return(model.Credentials{UserID: userID, Role: model.RoleAdmin, PasswordHash: hasher.Hash("password123")}, nil)
	tokMan.On("Generate", userID, model.RoleAdmin).Return("signed-token", nil)

	a := NewAuth(userStore, hasher, tokMan, testutil.MakeNoopLogger())

	result, err := a.Authenticate(ctx, "a@b.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, userID, result.UserID)
	assert.Equal(t, "signed-token", result.Token)
	assert.Equal(t, model.RoleAdmin, result.Role)
}

func TestAuth_Authenticate_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}
	tokMan := &mocks.TokenManager{}

	userStore.On("GetCredentialsByEmail", mock.Anything, "nobody@b.com").
		Return(model.Credentials{}, model.ErrNotFound)

	a := NewAuth(userStore, newTestHasher(t), tokMan, testutil.MakeNoopLogger())

	_, err := a.Authenticate(ctx, "nobody@b.com", "password123")
	require.ErrorIs(t, err, model.ErrNotFound)
	tokMan.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestAuth_Authenticate_WrongPassword(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}
	tokMan := &mocks.TokenManager{}
	hasher := newTestHasher(t)

	userStore.On("GetCredentialsByEmail", mock.Anything, "a@b.com").
		Return(model.Credentials{UserID: uuid.New(), Role: model.RoleUser, PasswordHash: hasher.Hash("password123")}, nil)

	a := NewAuth(userStore, hasher, tokMan, testutil.MakeNoopLogger())

	// A wrong password is indistinguishable from an unknown email.
	_, err := a.Authenticate(ctx, "a@b.com", "wrong-password")
	require.ErrorIs(t, err, model.ErrNotFound)
	tokMan.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestAuth_Authenticate_TokenFailure(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}
	tokMan := &mocks.TokenManager{}
	hasher := newTestHasher(t)
	userID := uuid.New()

	userStore.On("GetCredentialsByEmail", mock.Anything, "a@b.com").
		Return(model.Credentials{UserID: userID, Role: model.RoleUser, PasswordHash: hasher.Hash("password123")}, nil)
	tokMan.On("Generate", userID, model.RoleUser).Return("", errors.New("signing broke"))

	a := NewAuth(userStore, hasher, tokMan, testutil.MakeNoopLogger())

	_, err := a.Authenticate(ctx, "a@b.com", "password123")
	require.Error(t, err)
	require.NotErrorIs(t, err, model.ErrNotFound)
}
