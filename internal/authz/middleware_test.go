package authz

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridian-hris/meridian/internal/shared"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func guardedRequest(t *testing.T, mw Middleware, required []Role, headerRoles string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	var called bool
	handler := mw.Require(required...)(okHandler(&called))

	r := httptest.NewRequest("GET", "/v1/protected", nil)
	r = r.WithContext(shared.ContextWithScope(r.Context(), &shared.Scope{}))
	if headerRoles != "" {
		r.Header.Set(RolesHeader, headerRoles)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w, called
}

func TestRequireNoRolesConfiguredPasses(t *testing.T) {
	w, called := guardedRequest(t, Middleware{}, nil, "")
	require.True(t, called)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireMissingRolesUnauthorized(t *testing.T) {
	w, called := guardedRequest(t, Middleware{}, []Role{RoleHRAdmin}, "")
	require.False(t, called)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "missing roles")
}

func TestRequireInsufficientRoleForbidden(t *testing.T) {
	w, called := guardedRequest(t, Middleware{}, []Role{RoleHRAdmin}, "EMPLOYEE")
	require.False(t, called)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "insufficient role")
}

func TestRequireIntersectionPasses(t *testing.T) {
	w, called := guardedRequest(t, Middleware{}, []Role{RoleHRAdmin, RoleHRBP}, "EMPLOYEE,HRBP")
	require.True(t, called)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireUnknownTokensDroppedBeforeCheck(t *testing.T) {
	// "bogus" never grants access; the surviving MANAGER does.
	w, called := guardedRequest(t, Middleware{}, []Role{RoleManager}, "bogus, manager")
	require.True(t, called)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireOnlyUnknownTokensUnauthorized(t *testing.T) {
	w, called := guardedRequest(t, Middleware{}, []Role{RoleManager}, "bogus,nonsense")
	require.False(t, called)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireUsesScopeRolesFromEarlierMiddleware(t *testing.T) {
	var called bool
	handler := Middleware{}.Require(RoleAuditor)(okHandler(&called))

	sc := &shared.Scope{AppRoles: []string{"AUDITOR"}}
	r := httptest.NewRequest("GET", "/v1/audit/events", nil)
	r = r.WithContext(shared.ContextWithScope(r.Context(), sc))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.True(t, called)
	require.Equal(t, http.StatusOK, w.Code)
}
