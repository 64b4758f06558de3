package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dlalic/unpacking/internal/auth"
	"github.com/dlalic/unpacking/internal/logger"
	"github.com/dlalic/unpacking/internal/model"
	"github.com/dlalic/unpacking/internal/service"
)

// SnippetService defines the snippet operations the handler needs.
type SnippetService interface {
	Create(ctx context.Context, text string, media model.Media, link *string, terms, existingAuthors []uuid.UUID, newAuthors []string) (uuid.UUID, error)
	ListAll(ctx context.Context) ([]model.SnippetWithRelated, error)
	Search(ctx context.Context, termID *uuid.UUID, page int64) (service.SearchResult, error)
	Update(ctx context.Context, id uuid.UUID, text string, media model.Media, link *string, terms, existingAuthors []uuid.UUID, newAuthors []string) error
	Delete(ctx context.Context, id uuid.UUID) error
	MediaStats(ctx context.Context) ([]model.MediaStat, error)
}

// Snippet handles the snippet endpoints.
type Snippet struct {
	snippetService SnippetService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewSnippet creates a new Snippet handler.
func NewSnippet(snippetService SnippetService, contextManager model.ContextManager, logger *logger.Logger) *Snippet {
	return &Snippet{
		snippetService: snippetService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type snippetRequest struct {
	Text            string      `json:"text"`
	Media           string      `json:"media"`
	Link            *string     `json:"link"`
	Terms           []uuid.UUID `json:"terms"`
	ExistingAuthors []uuid.UUID `json:"existing_authors"`
	NewAuthors      []string    `json:"new_authors"`
}

func (r *snippetRequest) validate() error {
	if utf8.RuneCountInString(r.Text) < minTextLength {
		return errors.New("text is too short")
	}
	if _, err := model.ParseMedia(r.Media); err != nil {
		return err
	}
	return nil
}

type snippetResponse struct {
	ID      uuid.UUID        `json:"id"`
	Text    string           `json:"text"`
	Media   model.Media      `json:"media"`
	Link    *string          `json:"link"`
	Terms   []model.NamedRef `json:"terms"`
	Authors []model.NamedRef `json:"authors"`
}

type snippetSearchResponse struct {
	Pages    int64             `json:"pages"`
	Snippets []snippetResponse `json:"snippets"`
}

type mediaStatResponse struct {
	Media model.Media `json:"media"`
	Count int64       `json:"count"`
}

func toSnippetResponses(snippets []model.SnippetWithRelated) []snippetResponse {
	out := make([]snippetResponse, 0, len(snippets))
	for _, s := range snippets {
		terms := s.Terms
		if terms == nil {
			terms = []model.NamedRef{}
		}
		authors := s.Authors
		if authors == nil {
			authors = []model.NamedRef{}
		}
		out = append(out, snippetResponse{
			ID:      s.ID,
			Text:    s.Text,
			Media:   s.Media,
			Link:    s.Link,
			Terms:   terms,
			Authors: authors,
		})
	}
	return out
}

// Create handles POST, admin-only.
func (h *Snippet) Create(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(authFromRequest(h.contextManager, r)); err != nil {
		handleError(w, h.logger, err)
		return
	}

	var req snippetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	media, _ := model.ParseMedia(req.Media)

	id, err := h.snippetService.Create(r.Context(), req.Text, media, req.Link, req.Terms, req.ExistingAuthors, req.NewAuthors)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, id)
}

// ReadAll handles GET of every snippet for any authenticated user.
func (h *Snippet) ReadAll(w http.ResponseWriter, r *http.Request) {
	snippets, err := h.snippetService.ListAll(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toSnippetResponses(snippets))
}

// Search handles paginated GET with an optional term_id filter.
func (h *Snippet) Search(w http.ResponseWriter, r *http.Request) {
	var termID *uuid.UUID
	if raw := r.URL.Query().Get("term_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, model.ErrNotFound.Error(), http.StatusBadRequest)
			return
		}
		termID = &id
	}

	page := int64(1)
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			http.Error(w, "invalid page", http.StatusBadRequest)
			return
		}
		page = parsed
	}

	result, err := h.snippetService.Search(r.Context(), termID, page)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, snippetSearchResponse{
		Pages:    result.Pages,
		Snippets: toSnippetResponses(result.Snippets),
	})
}

// Update handles PUT by id, admin-only.
func (h *Snippet) Update(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(authFromRequest(h.contextManager, r)); err != nil {
		handleError(w, h.logger, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, model.ErrNotFound.Error(), http.StatusBadRequest)
		return
	}

	var req snippetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	media, _ := model.ParseMedia(req.Media)

	if err := h.snippetService.Update(r.Context(), id, req.Text, media, req.Link, req.Terms, req.ExistingAuthors, req.NewAuthors); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE by id, admin-only.
func (h *Snippet) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(authFromRequest(h.contextManager, r)); err != nil {
		handleError(w, h.logger, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, model.ErrNotFound.Error(), http.StatusBadRequest)
		return
	}

	if err := h.snippetService.Delete(r.Context(), id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET of per-media snippet counts for any authenticated user.
func (h *Snippet) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.snippetService.MediaStats(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	out := make([]mediaStatResponse, 0, len(stats))
	for _, s := range stats {
		out = append(out, mediaStatResponse{Media: s.Media, Count: s.Count})
	}
	writeJSON(w, http.StatusOK, out)
}
