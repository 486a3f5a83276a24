package employees

import (
	"github.com/go-chi/chi/v5"

	"github.com/meridian-hris/meridian/internal/authz"
)

// MountRoutes registers employee endpoints with their role guards.
func (h *Handler) MountRoutes(r chi.Router, guard authz.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(guard.Require(authz.RoleHRAdmin, authz.RoleHRBP, authz.RoleManager, authz.RoleEmployee))
		r.Get("/", h.list)
		r.Get("/{id}", h.detail)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.Require(authz.RoleHRAdmin, authz.RoleHRBP))
		r.Post("/", h.create)
		r.Patch("/{id}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.Require(authz.RoleHRAdmin, authz.RoleHRBP, authz.RoleFinance))
		r.Get("/{id}/cost-splits", h.listCostSplits)
		r.Put("/{id}/cost-splits", h.replaceCostSplits)
	})
}
