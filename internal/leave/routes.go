package leave

import (
	"github.com/go-chi/chi/v5"

	"github.com/meridian-hris/meridian/internal/authz"
)

// MountRoutes registers leave endpoints. Approval decisions are restricted;
// requests and balances are visible to any authenticated role.
func (h *Handler) MountRoutes(r chi.Router, guard authz.Middleware) {
	r.Post("/requests", h.create)
	r.Get("/requests", h.list)
	r.Get("/requests/{id}", h.detail)
	r.Get("/balances/{employeeId}", h.balances)
	r.Group(func(r chi.Router) {
		r.Use(guard.Require(authz.RoleHRAdmin, authz.RoleHRBP, authz.RoleManager))
		r.Post("/requests/{id}/decision", h.decide)
	})
}
