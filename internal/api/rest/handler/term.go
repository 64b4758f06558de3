package handler

import (
	"context"
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dlalic/unpacking/internal/auth"
	"github.com/dlalic/unpacking/internal/logger"
	"github.com/dlalic/unpacking/internal/model"
)

// TermService defines the term management operations the handler needs.
type TermService interface {
	Create(ctx context.Context, name string, related []uuid.UUID) (uuid.UUID, error)
	List(ctx context.Context) ([]model.TermWithRelated, error)
	Update(ctx context.Context, id uuid.UUID, name string, related []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	Graph(ctx context.Context) (model.TermGraph, error)
}

// Term handles the term endpoints.
type Term struct {
	termService    TermService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewTerm creates a new Term handler.
func NewTerm(termService TermService, contextManager model.ContextManager, logger *logger.Logger) *Term {
	return &Term{
		termService:    termService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type termRequest struct {
	Name    string      `json:"name"`
	Related []uuid.UUID `json:"related"`
}

func (r *termRequest) validate() error {
	if utf8.RuneCountInString(r.Name) < minNameLength {
		return errors.New("name is too short")
	}
	return nil
}

type termResponse struct {
	ID      uuid.UUID   `json:"id"`
	Name    string      `json:"name"`
	Related []uuid.UUID `json:"related"`
}

// termGraphResponse lists term names and relation edges as index pairs into
// the names list, ready for rendering.
type termGraphResponse struct {
	Terms []string `json:"terms"`
	Nodes [][2]int `json:"nodes"`
}

// Create handles POST, admin-only.
func (h *Term) Create(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(authFromRequest(h.contextManager, r)); err != nil {
		handleError(w, h.logger, err)
		return
	}

	var req termRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := h.termService.Create(r.Context(), req.Name, req.Related)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, id)
}

// ReadAll handles GET for any authenticated user.
func (h *Term) ReadAll(w http.ResponseWriter, r *http.Request) {
	terms, err := h.termService.List(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	out := make([]termResponse, 0, len(terms))
	for _, term := range terms {
		related := term.Related
		if related == nil {
			related = []uuid.UUID{}
		}
		out = append(out, termResponse{ID: term.ID, Name: term.Name, Related: related})
	}
	writeJSON(w, http.StatusOK, out)
}

// Update handles PUT by id, admin-only.
func (h *Term) Update(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(authFromRequest(h.contextManager, r)); err != nil {
		handleError(w, h.logger, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, model.ErrNotFound.Error(), http.StatusBadRequest)
		return
	}

	var req termRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.termService.Update(r.Context(), id, req.Name, req.Related); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE by id, admin-only.
func (h *Term) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(authFromRequest(h.contextManager, r)); err != nil {
		handleError(w, h.logger, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, model.ErrNotFound.Error(), http.StatusBadRequest)
		return
	}

	if err := h.termService.Delete(r.Context(), id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReadGraph handles GET of the relation graph for any authenticated user.
func (h *Term) ReadGraph(w http.ResponseWriter, r *http.Request) {
	graph, err := h.termService.Graph(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	resp := termGraphResponse{Terms: graph.Names, Nodes: graph.Edges}
	if resp.Terms == nil {
		resp.Terms = []string{}
	}
	if resp.Nodes == nil {
		resp.Nodes = [][2]int{}
	}
	writeJSON(w, http.StatusOK, resp)
}
