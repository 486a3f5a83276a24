package shared

import "context"

// Principal describes the authenticated user attached to a request.
type Principal struct {
	ID     string
	Email  string
	Tenant string
	Roles  []string
}

// Scope carries per-request identity and authorization state. One Scope is
// created per inbound request and threaded through context.Context; it is
// never shared across requests. Guards populate AppRoles and RoleKeys
// incrementally, handlers and the audit recorder read them.
type Scope struct {
	TenantID  string
	ActorID   string
	IP        string
	UserAgent string

	Principal *Principal

	// AppRoles and RoleKeys are filled in by the role resolver on first use.
	AppRoles []string
	RoleKeys []string
}

type scopeContextKey struct{}

// ContextWithScope stores the request scope in context.
func ContextWithScope(ctx context.Context, sc *Scope) context.Context {
	return context.WithValue(ctx, scopeContextKey{}, sc)
}

// ScopeFromContext extracts the request scope from context, or nil.
func ScopeFromContext(ctx context.Context) *Scope {
	sc, _ := ctx.Value(scopeContextKey{}).(*Scope)
	return sc
}
