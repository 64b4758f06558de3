// Package mocks contains hand-written testify mocks for the model
// interfaces, shared across test packages.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dlalic/unpacking/internal/model"
)

type UserStore struct {
	mock.Mock
}

func (m *UserStore) Create(ctx context.Context, user model.User, passwordHash string) (uuid.UUID, error) {
	args := m.Called(ctx, user, passwordHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetCredentialsByEmail(ctx context.Context, email string) (model.Credentials, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.Credentials), args.Error(1)
}

func (m *UserStore) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *UserStore) Update(ctx context.Context, id uuid.UUID, name, email string, role model.Role) error {
	args := m.Called(ctx, id, name, email, role)
	return args.Error(0)
}

func (m *UserStore) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type AuthorStore struct {
	mock.Mock
}

func (m *AuthorStore) CreateMany(ctx context.Context, names []string) ([]uuid.UUID, error) {
	args := m.Called(ctx, names)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *AuthorStore) List(ctx context.Context) ([]model.Author, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Author), args.Error(1)
}

func (m *AuthorStore) Update(ctx context.Context, id uuid.UUID, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *AuthorStore) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type TermStore struct {
	mock.Mock
}

func (m *TermStore) Create(ctx context.Context, term model.Term, related []uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, term, related)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *TermStore) List(ctx context.Context) ([]model.Term, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Term), args.Error(1)
}

func (m *TermStore) ListRelated(ctx context.Context) ([]model.TermRelated, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.TermRelated), args.Error(1)
}

func (m *TermStore) Update(ctx context.Context, id uuid.UUID, name string, related []uuid.UUID) error {
	args := m.Called(ctx, id, name, related)
	return args.Error(0)
}

func (m *TermStore) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TermStore) Graph(ctx context.Context) (model.TermGraph, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.TermGraph), args.Error(1)
}

type SnippetStore struct {
	mock.Mock
}

func (m *SnippetStore) Create(ctx context.Context, snippet model.Snippet, terms, existingAuthors []uuid.UUID, newAuthors []string) (uuid.UUID, error) {
	args := m.Called(ctx, snippet, terms, existingAuthors, newAuthors)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *SnippetStore) Update(ctx context.Context, id uuid.UUID, text string, media model.Media, link *string, terms, existingAuthors []uuid.UUID, newAuthors []string) error {
	args := m.Called(ctx, id, text, media, link, terms, existingAuthors, newAuthors)
	return args.Error(0)
}

func (m *SnippetStore) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *SnippetStore) Search(ctx context.Context, termID *uuid.UUID, limit, offset *int64) ([]model.SnippetWithRelated, error) {
	args := m.Called(ctx, termID, limit, offset)
	return args.Get(0).([]model.SnippetWithRelated), args.Error(1)
}

func (m *SnippetStore) Count(ctx context.Context, termID *uuid.UUID, pageSize int64) (int64, error) {
	args := m.Called(ctx, termID, pageSize)
	return args.Get(0).(int64), args.Error(1)
}

func (m *SnippetStore) MediaStats(ctx context.Context) ([]model.MediaStat, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.MediaStat), args.Error(1)
}

type TokenManager struct {
	mock.Mock
}

func (m *TokenManager) Generate(userID uuid.UUID, role model.Role) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) Parse(token string) (*model.AuthData, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthData), args.Error(1)
}
