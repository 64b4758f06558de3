package context

import (
	"context"

	"github.com/dlalic/unpacking/internal/model"
)

type contextKey int

// authKey is the context key under which verified auth data is stored.
const authKey contextKey = iota

// Manager moves verified auth data in and out of request contexts. It
// implements model.ContextManager.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetAuthToContext returns a child context carrying the auth data.
func (m *Manager) SetAuthToContext(ctx context.Context, auth *model.AuthData) context.Context {
	return context.WithValue(ctx, authKey, auth)
}

// GetAuthFromContext retrieves the auth data stored by the authentication
// middleware, if any.
func (m *Manager) GetAuthFromContext(ctx context.Context) (*model.AuthData, bool) {
	auth, ok := ctx.Value(authKey).(*model.AuthData)
	if !ok || auth == nil {
		return nil, false
	}
	return auth, true
}
