package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/ansuz/internal/admin"
	"github.com/starford/ansuz/internal/models"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *admin.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	for _, kind := range models.Kinds {
		r.Route("/"+string(kind), func(r chi.Router) {
			r.Get("/", h.List(kind))
			r.Post("/", h.Create(kind))
			r.Put("/filter", h.SetFilter(kind))

			switch kind {
			case models.KindProducts, models.KindBlog:
				r.Get("/categories", h.Categories(kind))
			case models.KindNotifications:
				r.Post("/read-all", h.MarkAllAsRead)
				r.Get("/unread-count", h.UnreadCount)
				r.Post("/{id}/read", h.MarkAsRead)
			}

			r.Get("/{id}", h.Get(kind))
			r.Put("/{id}", h.Update(kind))
			r.Delete("/{id}", h.Delete(kind))
		})
	}

	r.Get("/metrics/dashboard", h.Dashboard)
	r.Get("/metrics/analytics", h.Analytics)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
