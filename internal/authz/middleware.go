package authz

import (
	"log/slog"
	"net/http"

	"github.com/meridian-hris/meridian/internal/observability"
	"github.com/meridian-hris/meridian/internal/platform/httpx"
)

// Middleware wires role-based authorization for HTTP handlers. Required
// roles are declared explicitly at route registration; there is no
// reflection-based discovery.
type Middleware struct {
	Logger  *slog.Logger
	Metrics *observability.Metrics
}

// Require ensures the request resolves at least one of the required roles.
// With no required roles the request passes unconditionally, even when no
// roles could be resolved. An empty resolved set against a restricted route
// yields 401 (missing roles); a non-empty set with no intersection yields
// 403 (insufficient role). Evaluation is stateless and runs before the
// handler.
func (m Middleware) Require(required ...Role) func(http.Handler) http.Handler {
	requiredSet := make(map[Role]struct{}, len(required))
	for _, role := range required {
		requiredSet[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(requiredSet) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			resolved := Resolve(r)
			if len(resolved) == 0 {
				m.Metrics.CountDenial("missing_roles")
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "missing roles")
				return
			}
			for _, role := range resolved {
				if _, ok := requiredSet[role]; ok {
					next.ServeHTTP(w, r)
					return
				}
			}
			if m.Logger != nil {
				m.Logger.Debug("role check failed",
					slog.String("path", r.URL.Path),
					slog.Any("resolved", resolved))
			}
			m.Metrics.CountDenial("insufficient_role")
			httpx.Problem(w, http.StatusForbidden, "Forbidden", "insufficient role")
		})
	}
}
