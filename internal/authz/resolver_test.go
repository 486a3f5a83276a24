package authz

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridian-hris/meridian/internal/shared"
)

func TestResolveMergesAllThreeSources(t *testing.T) {
	sc := &shared.Scope{
		AppRoles:  []string{"MANAGER"},
		Principal: &shared.Principal{ID: "u1", Roles: []string{"EMPLOYEE"}},
	}
	r := httptest.NewRequest("GET", "/v1/employees", nil)
	r = r.WithContext(shared.ContextWithScope(r.Context(), sc))
	r.Header.Add(RolesHeader, "HR_ADMIN")
	r.Header.Add(RolesHeader, "AUDITOR")

	roles := Resolve(r)
	require.Equal(t, []Role{RoleManager, RoleEmployee, RoleHRAdmin, RoleAuditor}, roles)
	require.Equal(t, []string{"MANAGER", "EMPLOYEE", "HR_ADMIN", "AUDITOR"}, sc.AppRoles)
	require.Equal(t, []string{"MANAGER", "EMPLOYEE", "SYSTEM_OWNER", "AUDITOR"}, sc.RoleKeys)
}

func TestResolveHeaderOnly(t *testing.T) {
	sc := &shared.Scope{}
	r := httptest.NewRequest("GET", "/v1/employees", nil)
	r = r.WithContext(shared.ContextWithScope(r.Context(), sc))
	r.Header.Set(RolesHeader, "HR_ADMIN, bogus, manager")

	roles := Resolve(r)
	require.Equal(t, []Role{RoleHRAdmin, RoleManager}, roles)
}

func TestResolveAllSourcesAbsent(t *testing.T) {
	sc := &shared.Scope{}
	r := httptest.NewRequest("GET", "/v1/employees", nil)
	r = r.WithContext(shared.ContextWithScope(r.Context(), sc))

	require.Empty(t, Resolve(r))
	require.Empty(t, sc.AppRoles)
	require.Empty(t, sc.RoleKeys)
}

func TestResolveDoesNotOverwriteExistingRoleKeys(t *testing.T) {
	sc := &shared.Scope{RoleKeys: []string{"SUPERVISOR"}}
	r := httptest.NewRequest("GET", "/v1/communications", nil)
	r = r.WithContext(shared.ContextWithScope(r.Context(), sc))
	r.Header.Set(RolesHeader, "EMPLOYEE")

	Resolve(r)
	require.Equal(t, []string{"SUPERVISOR"}, sc.RoleKeys)
	require.Equal(t, []string{"EMPLOYEE"}, sc.AppRoles)
}

func TestResolveIsIdempotent(t *testing.T) {
	sc := &shared.Scope{}
	r := httptest.NewRequest("GET", "/v1/employees", nil)
	r = r.WithContext(shared.ContextWithScope(r.Context(), sc))
	r.Header.Set(RolesHeader, "HRBP,EMPLOYEE")

	first := Resolve(r)
	second := Resolve(r)
	require.Equal(t, first, second)
	require.Equal(t, []string{"HRBP", "EMPLOYEE"}, sc.AppRoles)
	require.Equal(t, []string{"HR_BUSINESS_PARTNER", "EMPLOYEE"}, sc.RoleKeys)
}

func TestResolveWithoutScope(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/employees", nil)
	r.Header.Set(RolesHeader, "EXEC")
	require.Equal(t, []Role{RoleExec}, Resolve(r))
}

func TestScopeRoleKeys(t *testing.T) {
	sc := &shared.Scope{RoleKeys: []string{"SYSTEM_OWNER", "MANAGER"}}
	require.Equal(t, []RoleKey{KeySystemOwner, KeyManager}, ScopeRoleKeys(sc))
	require.Nil(t, ScopeRoleKeys(nil))
}
