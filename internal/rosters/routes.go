package rosters

import (
	"github.com/go-chi/chi/v5"

	"github.com/meridian-hris/meridian/internal/authz"
)

// MountRoutes registers roster endpoints with their role guards.
func (h *Handler) MountRoutes(r chi.Router, guard authz.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(guard.Require(authz.RoleHRAdmin, authz.RoleManager, authz.RolePayroll, authz.RoleAuditor))
		r.Get("/", h.list)
		r.Get("/{id}", h.detail)
		r.Get("/{id}/shifts", h.shifts)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.Require(authz.RoleHRAdmin, authz.RoleManager))
		r.Post("/", h.create)
		r.Post("/{id}/shifts/generate", h.generate)
	})
}
