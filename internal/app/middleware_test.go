package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridian-hris/meridian/internal/shared"
)

func scopeEcho(captured **shared.Scope) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = shared.ScopeFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestScopeMiddlewareCapturesOrigin(t *testing.T) {
	var sc *shared.Scope
	handler := scopeMiddleware(scopeEcho(&sc))

	r := httptest.NewRequest("GET", "/v1/employees", nil)
	r.RemoteAddr = "203.0.113.7:51234"
	r.Header.Set("User-Agent", "meridian-test/1.0")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.NotNil(t, sc)
	require.Equal(t, "203.0.113.7", sc.IP)
	require.Equal(t, "meridian-test/1.0", sc.UserAgent)
	require.Equal(t, "anonymous", sc.ActorID)
	require.Empty(t, sc.TenantID)
}

func tenantChain(captured **shared.Scope) http.Handler {
	return scopeMiddleware(tenantMiddleware(nil)(scopeEcho(captured)))
}

func TestTenantMiddlewareRejectsMissingHeader(t *testing.T) {
	var sc *shared.Scope
	handler := tenantChain(&sc)

	r := httptest.NewRequest("GET", "/v1/employees", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "missing tenant context")
	require.Nil(t, sc)
}

func TestTenantMiddlewarePopulatesScope(t *testing.T) {
	var sc *shared.Scope
	handler := tenantChain(&sc)

	r := httptest.NewRequest("GET", "/v1/employees", nil)
	r.Header.Set(TenantHeader, "tenant-1")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, sc)
	require.Equal(t, "tenant-1", sc.TenantID)
}

func TestTenantMiddlewareExemptions(t *testing.T) {
	cases := []struct {
		method string
		path   string
	}{
		{"GET", "/healthz"},
		{"GET", "/metrics"},
		{"POST", "/v1/identity/tenants"},
		{"POST", "/v1/identity/login"},
	}
	for _, tc := range cases {
		var sc *shared.Scope
		handler := tenantChain(&sc)

		r := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		require.Equalf(t, http.StatusOK, w.Code, "%s %s should be tenant-exempt", tc.method, tc.path)
	}
}

func TestTenantCreateOnlyExemptForPost(t *testing.T) {
	var sc *shared.Scope
	handler := tenantChain(&sc)

	r := httptest.NewRequest("GET", "/v1/identity/tenants", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTenantMiddlewarePromotesPrincipalToActor(t *testing.T) {
	var captured *shared.Scope
	inner := tenantMiddleware(nil)(scopeEcho(&captured))
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sc := &shared.Scope{ActorID: "anonymous", Principal: &shared.Principal{ID: "user-7"}}
		inner.ServeHTTP(w, r.WithContext(shared.ContextWithScope(r.Context(), sc)))
	})

	r := httptest.NewRequest("GET", "/v1/employees", nil)
	r.Header.Set(TenantHeader, "tenant-1")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "user-7", captured.ActorID)
}
