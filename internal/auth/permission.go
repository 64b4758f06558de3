// Package auth provides the permission checks applied after token
// validation. Each check consumes the outcome of model.TokenManager.Parse
// (auth data or error) and yields the subject id or a sentinel error the
// REST layer maps to 401/403.
package auth

import (
	"github.com/google/uuid"

	"github.com/dlalic/unpacking/internal/model"
)

// RequireAdmin passes only for a valid token carrying the Admin role.
func RequireAdmin(data *model.AuthData, err error) (uuid.UUID, error) {
	if err != nil || data == nil {
		return uuid.Nil, model.ErrUnauthorized
	}
	if data.Role != model.RoleAdmin {
		return uuid.Nil, model.ErrForbidden
	}
	return data.UserID, nil
}

// RequireSelfOrAdmin passes for the Admin role regardless of target, or for
// any valid token whose subject is the target user.
func RequireSelfOrAdmin(data *model.AuthData, err error, target uuid.UUID) (uuid.UUID, error) {
	if err != nil || data == nil {
		return uuid.Nil, model.ErrUnauthorized
	}
	if data.Role == model.RoleAdmin || data.UserID == target {
		return data.UserID, nil
	}
	return uuid.Nil, model.ErrForbidden
}
