package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TermStore defines persistence operations for terms and their relations.
type TermStore interface {
	Create(ctx context.Context, term Term, related []uuid.UUID) (uuid.UUID, error)
	List(ctx context.Context) ([]Term, error)
	ListRelated(ctx context.Context) ([]TermRelated, error)
	Update(ctx context.Context, id uuid.UUID, name string, related []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	Graph(ctx context.Context) (TermGraph, error)
}

// Term represents a tag that may relate to other terms and to snippets.
type Term struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTerm builds a term with a fresh id and timestamps.
func NewTerm(name string) Term {
	now := time.Now()
	return Term{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TermRelated is a directed edge between two terms.
type TermRelated struct {
	TermID    uuid.UUID
	RelatedID uuid.UUID
}

// TermWithRelated is a term together with the ids of its outgoing edges.
type TermWithRelated struct {
	Term
	Related []uuid.UUID
}

// TermGraph is the relation table projected for rendering: term names plus
// edges as index pairs into Names.
type TermGraph struct {
	Names []string
	Edges [][2]int
}
