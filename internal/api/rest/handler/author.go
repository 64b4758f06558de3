package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dlalic/unpacking/internal/logger"
	"github.com/dlalic/unpacking/internal/model"
)

// AuthorService defines the author operations the handler needs.
type AuthorService interface {
	List(ctx context.Context) ([]model.Author, error)
}

// Author handles the author endpoints.
type Author struct {
	authorService  AuthorService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthor creates a new Author handler.
func NewAuthor(authorService AuthorService, contextManager model.ContextManager, logger *logger.Logger) *Author {
	return &Author{
		authorService:  authorService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type authorResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ReadAll handles GET for any authenticated user.
func (h *Author) ReadAll(w http.ResponseWriter, r *http.Request) {
	authors, err := h.authorService.List(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	out := make([]authorResponse, 0, len(authors))
	for _, a := range authors {
		out = append(out, authorResponse{ID: a.ID, Name: a.Name})
	}
	writeJSON(w, http.StatusOK, out)
}
