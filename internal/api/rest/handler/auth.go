package handler

import (
	"context"
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dlalic/unpacking/internal/logger"
	"github.com/dlalic/unpacking/internal/model"
	"github.com/dlalic/unpacking/internal/service"
)

// AuthService verifies credentials and issues tokens.
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (service.TokenResult, error)
}

// Auth handles the token endpoint.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

type createTokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *createTokenRequest) validate() error {
	if utf8.RuneCountInString(r.Email) < minEmailLength {
		return errors.New("email is too short")
	}
	if utf8.RuneCountInString(r.Password) < minPasswordLength {
		return errors.New("password is too short")
	}
	return nil
}

type tokenResponse struct {
	ID    uuid.UUID  `json:"id"`
	Token string     `json:"token"`
	Role  model.Role `json:"role"`
}

// Create exchanges email and password for a signed token.
func (h *Auth) Create(w http.ResponseWriter, r *http.Request) {
	var req createTokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.authService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		ID:    result.UserID,
		Token: result.Token,
		Role:  result.Role,
	})
}
