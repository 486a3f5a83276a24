package identity

import (
	"github.com/go-chi/chi/v5"

	"github.com/meridian-hris/meridian/internal/authz"
)

// MountRoutes registers identity endpoints. Tenant creation and login are
// exempt from the tenant guard; user provisioning is restricted.
func (h *Handler) MountRoutes(r chi.Router, guard authz.Middleware) {
	r.Post("/tenants", h.createTenant)
	r.Get("/tenants/{slug}/settings", h.tenantSettings)
	r.Post("/login", h.login)
	r.Group(func(r chi.Router) {
		r.Use(guard.Require(authz.RoleHRAdmin))
		r.Post("/users", h.createUser)
	})
}
