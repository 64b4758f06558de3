package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuthorStore defines persistence operations for authors.
type AuthorStore interface {
	CreateMany(ctx context.Context, names []string) ([]uuid.UUID, error)
	List(ctx context.Context) ([]Author, error)
	Update(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// Author represents a snippet author. Authors are first-class rows even when
// created from free text during snippet creation.
type Author struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAuthor builds an author with a fresh id and timestamps.
func NewAuthor(name string) Author {
	now := time.Now()
	return Author{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
