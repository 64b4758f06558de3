package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/dlalic/unpacking/internal/logger"
	"github.com/dlalic/unpacking/internal/model"
)

type Term struct {
	termStore model.TermStore
	logger    *logger.Logger
}

func NewTerm(termStore model.TermStore, logger *logger.Logger) *Term {
	return &Term{
		termStore: termStore,
		logger:    logger,
	}
}

func (s *Term) Create(ctx context.Context, name string, related []uuid.UUID) (uuid.UUID, error) {
	id, err := s.termStore.Create(ctx, model.NewTerm(name), related)
	if err != nil {
		s.logger.Error("Term service: failed to create term",
			"name", name,
			"error", err.Error())
		return uuid.Nil, err
	}

	s.logger.Info("Term service: term created", "term_id", id)

	return id, nil
}

// List returns every term with the ids of its outgoing relations attached.
func (s *Term) List(ctx context.Context) ([]model.TermWithRelated, error) {
	terms, err := s.termStore.List(ctx)
	if err != nil {
		return nil, err
	}
	related, err := s.termStore.ListRelated(ctx)
	if err != nil {
		return nil, err
	}

	relatedByTerm := make(map[uuid.UUID][]uuid.UUID, len(terms))
	for _, edge := range related {
		relatedByTerm[edge.TermID] = append(relatedByTerm[edge.TermID], edge.RelatedID)
	}

	out := make([]model.TermWithRelated, 0, len(terms))
	for _, term := range terms {
		out = append(out, model.TermWithRelated{Term: term, Related: relatedByTerm[term.ID]})
	}
	return out, nil
}

func (s *Term) Update(ctx context.Context, id uuid.UUID, name string, related []uuid.UUID) error {
	if err := s.termStore.Update(ctx, id, name, related); err != nil {
		s.logger.Error("Term service: failed to update term",
			"term_id", id,
			"error", err.Error())
		return err
	}
	return nil
}

func (s *Term) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.termStore.Delete(ctx, id); err != nil {
		s.logger.Error("Term service: failed to delete term",
			"term_id", id,
			"error", err.Error())
		return err
	}
	return nil
}

func (s *Term) Graph(ctx context.Context) (model.TermGraph, error) {
	return s.termStore.Graph(ctx)
}
