// Package handler contains the HTTP handlers. Requests arrive here already
// authenticated by the middleware; handlers validate field minimums, apply
// the permission checks and translate service errors to status codes.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dlalic/unpacking/internal/logger"
	"github.com/dlalic/unpacking/internal/model"
)

// Minimum field lengths, in characters. Validation happens at this boundary;
// services and repositories receive only valid input.
const (
	minNameLength     = 1
	minEmailLength    = 6
	minPasswordLength = 6
	minTextLength     = 1
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{ validate() error }) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return false
	}
	if err := v.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// handleError maps the sentinel errors to their status codes. Anything
// unclassified is logged in full and answered with a bare 500.
func handleError(w http.ResponseWriter, l *logger.Logger, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrAlreadyExists):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, model.ErrUnauthorized):
		http.Error(w, model.ErrUnauthorized.Error(), http.StatusUnauthorized)
	case errors.Is(err, model.ErrForbidden):
		http.Error(w, model.ErrForbidden.Error(), http.StatusForbidden)
	default:
		l.Error("request failed", "error", err.Error())
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// authFromRequest adapts the context lookup to the (data, error) pair the
// permission checks consume.
func authFromRequest(cm model.ContextManager, r *http.Request) (*model.AuthData, error) {
	data, ok := cm.GetAuthFromContext(r.Context())
	if !ok {
		return nil, model.ErrUnauthorized
	}
	return data, nil
}
