package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/dlalic/unpacking/internal/logger"
	"github.com/dlalic/unpacking/internal/model"
)

// PageSize is the fixed page length for snippet search.
const PageSize int64 = 20

type Snippet struct {
	snippetStore model.SnippetStore
	logger       *logger.Logger
}

func NewSnippet(snippetStore model.SnippetStore, logger *logger.Logger) *Snippet {
	return &Snippet{
		snippetStore: snippetStore,
		logger:       logger,
	}
}

// SearchResult is one page of snippets plus the total page count for the
// same filter.
type SearchResult struct {
	Pages    int64
	Snippets []model.SnippetWithRelated
}

func (s *Snippet) Create(ctx context.Context, text string, media model.Media, link *string, terms, existingAuthors []uuid.UUID, newAuthors []string) (uuid.UUID, error) {
	id, err := s.snippetStore.Create(ctx, model.NewSnippet(text, media, link), terms, existingAuthors, newAuthors)
	if err != nil {
		s.logger.Error("Snippet service: failed to create snippet",
			"error", err.Error())
		return uuid.Nil, err
	}

	s.logger.Info("Snippet service: snippet created", "snippet_id", id)

	return id, nil
}

// ListAll returns every snippet with its associations, unpaginated.
func (s *Snippet) ListAll(ctx context.Context) ([]model.SnippetWithRelated, error) {
	return s.snippetStore.Search(ctx, nil, nil, nil)
}

// Search returns the requested page (1-based) of snippets, optionally
// restricted to one term, along with how many pages the filter yields.
func (s *Snippet) Search(ctx context.Context, termID *uuid.UUID, page int64) (SearchResult, error) {
	pages, err := s.snippetStore.Count(ctx, termID, PageSize)
	if err != nil {
		return SearchResult{}, err
	}

	limit := PageSize
	offset := (page - 1) * PageSize
	snippets, err := s.snippetStore.Search(ctx, termID, &limit, &offset)
	if err != nil {
		return SearchResult{}, err
	}

	return SearchResult{Pages: pages, Snippets: snippets}, nil
}

func (s *Snippet) Update(ctx context.Context, id uuid.UUID, text string, media model.Media, link *string, terms, existingAuthors []uuid.UUID, newAuthors []string) error {
	if err := s.snippetStore.Update(ctx, id, text, media, link, terms, existingAuthors, newAuthors); err != nil {
		s.logger.Error("Snippet service: failed to update snippet",
			"snippet_id", id,
			"error", err.Error())
		return err
	}
	return nil
}

func (s *Snippet) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.snippetStore.Delete(ctx, id); err != nil {
		s.logger.Error("Snippet service: failed to delete snippet",
			"snippet_id", id,
			"error", err.Error())
		return err
	}
	return nil
}

func (s *Snippet) MediaStats(ctx context.Context) ([]model.MediaStat, error) {
	return s.snippetStore.MediaStats(ctx)
}
