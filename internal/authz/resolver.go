package authz

import (
	"net/http"
	"strings"

	"github.com/meridian-hris/meridian/internal/shared"
)

// RolesHeader carries caller-supplied roles. It may repeat; repeated values
// are joined with commas before parsing.
const RolesHeader = "X-Roles"

// Resolve derives the effective application roles for the request from the
// three independent sources, in precedence order: roles already present on
// the request scope, roles on the authenticated principal, and the X-Roles
// header. The merged result and the derived role keys are written back onto
// the scope so downstream guards and handlers need not re-resolve. RoleKeys
// is only computed when not already populated.
func Resolve(r *http.Request) []Role {
	sc := shared.ScopeFromContext(r.Context())
	if sc == nil {
		return MergeRoles(headerRoles(r))
	}

	merged := MergeRoles(
		strings.Join(sc.AppRoles, ","),
		strings.Join(principalRoles(sc), ","),
		headerRoles(r),
	)

	sc.AppRoles = rolesToStrings(merged)
	if len(sc.RoleKeys) == 0 {
		sc.RoleKeys = keysToStrings(RolesToKeys(merged))
	}
	return merged
}

// ScopeRoleKeys returns the resolved role keys stored on the scope.
func ScopeRoleKeys(sc *shared.Scope) []RoleKey {
	if sc == nil {
		return nil
	}
	keys := make([]RoleKey, 0, len(sc.RoleKeys))
	for _, raw := range sc.RoleKeys {
		keys = append(keys, RoleKey(raw))
	}
	return keys
}

func principalRoles(sc *shared.Scope) []string {
	if sc.Principal == nil {
		return nil
	}
	var roles []string
	for _, role := range sc.Principal.Roles {
		if strings.TrimSpace(role) == "" {
			continue
		}
		roles = append(roles, role)
	}
	return roles
}

func headerRoles(r *http.Request) string {
	values := r.Header.Values(RolesHeader)
	if len(values) == 0 {
		return ""
	}
	return strings.Join(values, ",")
}

func rolesToStrings(roles []Role) []string {
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		out = append(out, string(role))
	}
	return out
}

func keysToStrings(keys []RoleKey) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, string(key))
	}
	return out
}
