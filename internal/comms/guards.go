package comms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-hris/meridian/internal/authz"
	"github.com/meridian-hris/meridian/internal/platform/httpx"
	"github.com/meridian-hris/meridian/internal/shared"
)

// ackAllowedKeys lists the role keys permitted to demand acknowledgement.
var ackAllowedKeys = []authz.RoleKey{authz.KeySystemOwner, authz.KeyManager, authz.KeySupervisor}

// RecipientReader is the single point lookup the recipient guard performs.
type RecipientReader interface {
	RecipientTenant(ctx context.Context, postID, userID string) (string, error)
}

// SupervisorReader reports whether a user supervises any of the given teams.
type SupervisorReader interface {
	IsSupervisorOf(ctx context.Context, tenantID, userID string, teamIDs []string) (bool, error)
}

// Guards layers the communications business rules on top of role checks.
type Guards struct {
	Logger *slog.Logger
	Repo   RecipientReader
	Teams  SupervisorReader
}

// RequireAckAllowed permits a create request that sets requireAck only when
// the caller's role keys intersect the allow list. The SUPERVISOR key is not
// granted through role mapping; it is earned here when the caller supervises
// one of the targeted teams, and written back onto the scope. Requests that
// do not set the flag always pass, regardless of role. The body is re-wound
// so the handler can decode it again.
func (g Guards) RequireAckAllowed(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "unreadable body")
			return
		}
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		var peek struct {
			RequireAck bool     `json:"requireAck"`
			TeamIDs    []string `json:"teamIds"`
		}
		// Malformed JSON is left for the handler's decoder to report.
		_ = json.Unmarshal(body, &peek)
		if !peek.RequireAck {
			next.ServeHTTP(w, r)
			return
		}

		authz.Resolve(r)
		sc := shared.ScopeFromContext(r.Context())
		for _, key := range authz.ScopeRoleKeys(sc) {
			for _, allowed := range ackAllowedKeys {
				if key == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
		}

		if g.Teams != nil && len(peek.TeamIDs) > 0 &&
			sc != nil && sc.TenantID != "" && sc.Principal != nil && sc.Principal.ID != "" {
			supervises, err := g.Teams.IsSupervisorOf(r.Context(), sc.TenantID, sc.Principal.ID, peek.TeamIDs)
			if err != nil {
				if g.Logger != nil {
					g.Logger.Error("supervisor lookup failed", slog.Any("error", err))
				}
				httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
				return
			}
			if supervises {
				sc.RoleKeys = append(sc.RoleKeys, string(authz.KeySupervisor))
				next.ServeHTTP(w, r)
				return
			}
		}
		httpx.Problem(w, http.StatusForbidden, "Forbidden",
			"ack-required posts are limited to admin, manager or supervisor roles")
	})
}

// RequireRecipient allows an action on a post only for its designated
// recipients within the ambient tenant. It performs exactly one store
// lookup; store failures surface as system errors rather than silently
// allowing the action.
func (g Guards) RequireRecipient(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		postID := chi.URLParam(r, "id")
		if postID == "" {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "communication post not found")
			return
		}

		sc := shared.ScopeFromContext(r.Context())
		if sc == nil || sc.TenantID == "" || sc.Principal == nil || sc.Principal.ID == "" {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "missing tenant or user context")
			return
		}

		recipientTenant, err := g.Repo.RecipientTenant(r.Context(), postID, sc.Principal.ID)
		if err != nil {
			if errors.Is(err, httpx.ErrNotFound) {
				httpx.Problem(w, http.StatusForbidden, "Forbidden",
					"not a required recipient for this communication")
				return
			}
			if g.Logger != nil {
				g.Logger.Error("recipient lookup failed", slog.Any("error", err))
			}
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
			return
		}
		if recipientTenant != sc.TenantID {
			httpx.Problem(w, http.StatusForbidden, "Forbidden", "tenant mismatch for recipient")
			return
		}
		next.ServeHTTP(w, r)
	})
}
