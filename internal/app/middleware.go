package app

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/meridian-hris/meridian/internal/auth"
	"github.com/meridian-hris/meridian/internal/observability"
	"github.com/meridian-hris/meridian/internal/platform/httpx"
	"github.com/meridian-hris/meridian/internal/shared"
)

// TenantHeader names the header carrying the caller's tenant.
const TenantHeader = "X-Tenant-Id"

// MiddlewareConfig aggregates dependencies shared by the middleware stack.
type MiddlewareConfig struct {
	Logger  *slog.Logger
	Config  *Config
	Tokens  *auth.TokenService
	Metrics *observability.Metrics
}

// scopeMiddleware creates the per-request Scope and captures origin details.
// It runs after RealIP so RemoteAddr reflects the forwarded client.
func scopeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}
		sc := &shared.Scope{
			IP:        ip,
			UserAgent: r.UserAgent(),
			ActorID:   "anonymous",
		}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithScope(r.Context(), sc)))
	})
}

// tenantExempt lists request shapes that may proceed without tenant context.
func tenantExempt(r *http.Request) bool {
	path := r.URL.Path
	if strings.HasPrefix(path, "/healthz") || strings.HasPrefix(path, "/metrics") {
		return true
	}
	if r.Method == http.MethodPost &&
		(path == "/v1/identity/tenants" || path == "/v1/identity/login") {
		return true
	}
	return false
}

// tenantMiddleware requires the tenant header and populates scope identity.
func tenantMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tenantExempt(r) {
				next.ServeHTTP(w, r)
				return
			}
			tenantID := strings.TrimSpace(r.Header.Get(TenantHeader))
			if tenantID == "" {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "missing tenant context")
				return
			}
			sc := shared.ScopeFromContext(r.Context())
			if sc == nil {
				logger.Error("tenant middleware before scope middleware", slog.String("path", r.URL.Path))
				httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
				return
			}
			sc.TenantID = tenantID
			if sc.Principal != nil && sc.Principal.ID != "" {
				sc.ActorID = sc.Principal.ID
			}
			next.ServeHTTP(w, r)
		})
	}
}

// MiddlewareStack installs the Meridian middleware chain.
func MiddlewareStack(cfg MiddlewareConfig) []func(http.Handler) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
		SSLRedirect:           cfg.Config != nil && cfg.Config.IsProduction(),
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
	})

	timeout := 30 * time.Second
	if cfg.Config != nil && cfg.Config.AppRequestTimeout > 0 {
		timeout = cfg.Config.AppRequestTimeout
	}
	rateLimit := 120
	if cfg.Config != nil && cfg.Config.RateLimitPerMinute > 0 {
		rateLimit = cfg.Config.RateLimitPerMinute
	}

	middlewares := []func(http.Handler) http.Handler{
		middleware.RealIP,
		middleware.RequestID,
		scopeMiddleware,
		auth.Middleware(cfg.Tokens, cfg.Logger),
		tenantMiddleware(cfg.Logger),
		middleware.Recoverer,
		middleware.Timeout(timeout),
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if err := secureMiddleware.Process(w, r); err != nil {
					cfg.Logger.Warn("secure headers blocked request", slog.Any("error", err))
					httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
					return
				}
				next.ServeHTTP(w, r)
			})
		},
		middleware.Compress(5),
		httprate.Limit(rateLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)),
	}
	if cfg.Metrics != nil {
		middlewares = append(middlewares, func(next http.Handler) http.Handler {
			return cfg.Metrics.Middleware(next)
		})
	}
	return middlewares
}
