package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	audithttp "github.com/meridian-hris/meridian/internal/audit/http"
	"github.com/meridian-hris/meridian/internal/authz"
	"github.com/meridian-hris/meridian/internal/comms"
	"github.com/meridian-hris/meridian/internal/employees"
	"github.com/meridian-hris/meridian/internal/identity"
	"github.com/meridian-hris/meridian/internal/leave"
	"github.com/meridian-hris/meridian/internal/observability"
	"github.com/meridian-hris/meridian/internal/payroll"
	"github.com/meridian-hris/meridian/internal/platform/httpx"
	"github.com/meridian-hris/meridian/internal/rosters"
	"github.com/meridian-hris/meridian/internal/travel"
	"github.com/meridian-hris/meridian/jobs"
)

// RouterConfig collects everything the HTTP surface needs.
type RouterConfig struct {
	Middleware MiddlewareConfig
	Guard      authz.Middleware
	Metrics    *observability.Metrics

	Identity  *identity.Handler
	Employees *employees.Handler
	Leave     *leave.Handler
	Payroll   *payroll.Handler
	Rosters   *rosters.Handler
	Travel    *travel.Handler
	Comms     *comms.Handler
	Audit     *audithttp.Handler
	Jobs      *jobs.Handler
}

// NewRouter assembles the middleware stack and mounts every module.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()
	for _, mw := range MiddlewareStack(cfg.Middleware) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Route("/identity", func(r chi.Router) {
			cfg.Identity.MountRoutes(r, cfg.Guard)
		})
		r.Route("/employees", func(r chi.Router) {
			cfg.Employees.MountRoutes(r, cfg.Guard)
		})
		r.Route("/leave", func(r chi.Router) {
			cfg.Leave.MountRoutes(r, cfg.Guard)
		})
		r.Route("/payroll", func(r chi.Router) {
			cfg.Payroll.MountRoutes(r, cfg.Guard)
		})
		r.Route("/rosters", func(r chi.Router) {
			cfg.Rosters.MountRoutes(r, cfg.Guard)
		})
		r.Route("/travel", func(r chi.Router) {
			cfg.Travel.MountRoutes(r, cfg.Guard)
		})
		r.Route("/communications", func(r chi.Router) {
			cfg.Comms.MountRoutes(r)
		})
		r.Route("/audit", func(r chi.Router) {
			r.Use(cfg.Guard.Require(authz.RoleHRAdmin, authz.RoleComplianceOfficer, authz.RoleAuditor))
			cfg.Audit.MountRoutes(r)
		})
		if cfg.Jobs != nil {
			r.Route("/jobs", func(r chi.Router) {
				cfg.Jobs.MountRoutes(r)
			})
		}
	})

	return r
}
