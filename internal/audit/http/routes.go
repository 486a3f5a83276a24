package audithttp

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers audit endpoints under the given router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/events", h.record)
	r.Get("/events", h.list)
}
