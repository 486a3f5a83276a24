package payroll

import (
	"github.com/go-chi/chi/v5"

	"github.com/meridian-hris/meridian/internal/authz"
)

// MountRoutes registers payroll endpoints with their role guards.
func (h *Handler) MountRoutes(r chi.Router, guard authz.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(guard.Require(authz.RolePayroll, authz.RoleHRAdmin, authz.RoleAuditor))
		r.Get("/runs", h.listRuns)
		r.Get("/runs/{id}", h.runDetail)
		r.Get("/runs/{id}/payslips", h.payslips)
	})
	r.Group(func(r chi.Router) {
		r.Use(guard.Require(authz.RolePayroll, authz.RoleHRAdmin))
		r.Post("/runs", h.createRun)
	})
}
