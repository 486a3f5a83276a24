package travel

import (
	"github.com/go-chi/chi/v5"

	"github.com/meridian-hris/meridian/internal/authz"
)

// MountRoutes registers travel endpoints with their role guards.
func (h *Handler) MountRoutes(r chi.Router, guard authz.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(guard.Require(authz.RoleHRAdmin, authz.RoleManager, authz.RolePayroll, authz.RoleAuditor))
		r.Get("/requests", h.list)
		r.Get("/requests/{id}", h.detail)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.Require(authz.RoleHRAdmin, authz.RoleManager))
		r.Post("/requests", h.create)
		r.Post("/requests/{id}/decision", h.decide)
	})
}
