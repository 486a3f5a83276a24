package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/meridian-hris/meridian/internal/shared"
)

// Middleware attaches the bearer-token principal to the request scope.
// Requests without a token pass through anonymously; role and tenant guards
// downstream decide whether that is acceptable.
func Middleware(tokens *TokenService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}
			principal, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				if logger != nil {
					logger.Warn("bearer token rejected", slog.Any("error", err))
				}
				next.ServeHTTP(w, r)
				return
			}
			if sc := shared.ScopeFromContext(r.Context()); sc != nil {
				sc.Principal = principal
				if sc.ActorID == "" || sc.ActorID == "anonymous" {
					sc.ActorID = principal.ID
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
