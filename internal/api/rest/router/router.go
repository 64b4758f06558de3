// Package router wires the HTTP handlers into the route tree. Token issuing
// is the only open endpoint; everything else sits behind the bearer-token
// middleware.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dlalic/unpacking/internal/api/rest/handler"
	"github.com/dlalic/unpacking/internal/api/rest/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth    *handler.Auth
	User    *handler.User
	Term    *handler.Term
	Snippet *handler.Snippet
	Author  *handler.Author
}

// New builds the route tree.
func New(h Handlers, authenticate *middleware.Authenticate, logging *middleware.Logging) http.Handler {
	r := chi.NewRouter()
	r.Use(logging.Handle)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth", h.Auth.Create)

		r.Group(func(r chi.Router) {
			r.Use(authenticate.Handle)

			r.Route("/users", func(r chi.Router) {
				r.Post("/", h.User.Create)
				r.Get("/", h.User.ReadAll)
				r.Get("/{id}", h.User.Read)
				r.Put("/{id}", h.User.Update)
				r.Delete("/{id}", h.User.Delete)
			})

			r.Route("/terms", func(r chi.Router) {
				r.Post("/", h.Term.Create)
				r.Get("/", h.Term.ReadAll)
				r.Get("/read_graph", h.Term.ReadGraph)
				r.Put("/{id}", h.Term.Update)
				r.Delete("/{id}", h.Term.Delete)
			})

			r.Route("/snippets", func(r chi.Router) {
				r.Post("/", h.Snippet.Create)
				r.Get("/", h.Snippet.ReadAll)
				r.Get("/search", h.Snippet.Search)
				r.Get("/stats", h.Snippet.Stats)
				r.Put("/{id}", h.Snippet.Update)
				r.Delete("/{id}", h.Snippet.Delete)
			})

			r.Get("/authors", h.Author.ReadAll)
		})
	})

	return r
}
