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

// UserService defines the user management operations the handler needs.
type UserService interface {
	Create(ctx context.Context, name, email string, role model.Role, password string) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id uuid.UUID, name, email string, role model.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// User handles the user management endpoints. Everything except reading your
// own account is admin-only.
type User struct {
	userService    UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{
		userService:    userService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type createUserRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *createUserRequest) validate() error {
	if utf8.RuneCountInString(r.Name) < minNameLength {
		return errors.New("name is too short")
	}
	if utf8.RuneCountInString(r.Email) < minEmailLength {
		return errors.New("email is too short")
	}
	if utf8.RuneCountInString(r.Password) < minPasswordLength {
		return errors.New("password is too short")
	}
	if _, err := model.ParseRole(r.Role); err != nil {
		return err
	}
	return nil
}

type updateUserRequest struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

func (r *updateUserRequest) validate() error {
	if utf8.RuneCountInString(r.Name) < minNameLength {
		return errors.New("name is too short")
	}
	if utf8.RuneCountInString(r.Email) < minEmailLength {
		return errors.New("email is too short")
	}
	if _, err := model.ParseRole(r.Role); err != nil {
		return err
	}
	return nil
}

type userResponse struct {
	ID    uuid.UUID  `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

func toUserResponse(user model.User) userResponse {
	return userResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

// Create handles POST, admin-only.
func (h *User) Create(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(authFromRequest(h.contextManager, r)); err != nil {
		handleError(w, h.logger, err)
		return
	}

	var req createUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := h.userService.Create(r.Context(), req.Name, req.Email, model.Role(req.Role), req.Password)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, id)
}

// Read handles GET by id; users may read themselves, admins anyone.
func (h *User) Read(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, model.ErrNotFound.Error(), http.StatusBadRequest)
		return
	}

	data, authErr := authFromRequest(h.contextManager, r)
	if _, err := auth.RequireSelfOrAdmin(data, authErr, id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// ReadAll handles GET, admin-only.
func (h *User) ReadAll(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(authFromRequest(h.contextManager, r)); err != nil {
		handleError(w, h.logger, err)
		return
	}

	users, err := h.userService.List(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}
	writeJSON(w, http.StatusOK, out)
}

// Update handles PUT by id, admin-only.
func (h *User) Update(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(authFromRequest(h.contextManager, r)); err != nil {
		handleError(w, h.logger, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, model.ErrNotFound.Error(), http.StatusBadRequest)
		return
	}

	var req updateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.userService.Update(r.Context(), id, req.Name, req.Email, model.Role(req.Role)); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE by id, admin-only. The deletion is logical.
func (h *User) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(authFromRequest(h.contextManager, r)); err != nil {
		handleError(w, h.logger, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, model.ErrNotFound.Error(), http.StatusBadRequest)
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
