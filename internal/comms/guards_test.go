package comms

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/meridian-hris/meridian/internal/authz"
	"github.com/meridian-hris/meridian/internal/platform/httpx"
	"github.com/meridian-hris/meridian/internal/shared"
)

type stubRecipientReader struct {
	tenant string
	err    error
}

func (s stubRecipientReader) RecipientTenant(_ context.Context, _, _ string) (string, error) {
	return s.tenant, s.err
}

func passHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func ackRequest(body, rolesHeader string) *http.Request {
	r := httptest.NewRequest("POST", "/v1/communications", strings.NewReader(body))
	r = r.WithContext(shared.ContextWithScope(r.Context(), &shared.Scope{TenantID: "tenant-1"}))
	if rolesHeader != "" {
		r.Header.Set(authz.RolesHeader, rolesHeader)
	}
	return r
}

func TestRequireAckAllowedPassesWhenFlagUnset(t *testing.T) {
	var called bool
	handler := Guards{}.RequireAckAllowed(passHandler(&called))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, ackRequest(`{"title":"t","requireAck":false}`, "EMPLOYEE"))
	require.True(t, called)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAckAllowedAdminRole(t *testing.T) {
	var called bool
	handler := Guards{}.RequireAckAllowed(passHandler(&called))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, ackRequest(`{"requireAck":true}`, "HR_ADMIN"))
	require.True(t, called)
}

func TestRequireAckAllowedManagerRole(t *testing.T) {
	var called bool
	handler := Guards{}.RequireAckAllowed(passHandler(&called))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, ackRequest(`{"requireAck":true}`, "MANAGER"))
	require.True(t, called)
}

func TestRequireAckAllowedSupervisorKeyFromScope(t *testing.T) {
	var called bool
	handler := Guards{}.RequireAckAllowed(passHandler(&called))

	r := httptest.NewRequest("POST", "/v1/communications", strings.NewReader(`{"requireAck":true}`))
	sc := &shared.Scope{TenantID: "tenant-1", RoleKeys: []string{"SUPERVISOR"}}
	r = r.WithContext(shared.ContextWithScope(r.Context(), sc))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.True(t, called)
}

type stubSupervisorReader struct {
	supervises bool
	err        error
	teamIDs    []string
}

func (s *stubSupervisorReader) IsSupervisorOf(_ context.Context, _, _ string, teamIDs []string) (bool, error) {
	s.teamIDs = teamIDs
	return s.supervises, s.err
}

func supervisorAckRequest(body string) (*http.Request, *shared.Scope) {
	r := httptest.NewRequest("POST", "/v1/communications", strings.NewReader(body))
	sc := &shared.Scope{
		TenantID:  "tenant-1",
		Principal: &shared.Principal{ID: "user-1"},
	}
	return r.WithContext(shared.ContextWithScope(r.Context(), sc)), sc
}

func TestRequireAckAllowedGrantsSupervisorOfTargetedTeam(t *testing.T) {
	var called bool
	teams := &stubSupervisorReader{supervises: true}
	handler := Guards{Teams: teams}.RequireAckAllowed(passHandler(&called))

	r, sc := supervisorAckRequest(`{"requireAck":true,"teamIds":["team-1","team-2"]}`)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.True(t, called)
	require.Equal(t, []string{"team-1", "team-2"}, teams.teamIDs)
	require.Contains(t, sc.RoleKeys, string(authz.KeySupervisor))
}

func TestRequireAckAllowedRejectsNonSupervisor(t *testing.T) {
	var called bool
	handler := Guards{Teams: &stubSupervisorReader{}}.RequireAckAllowed(passHandler(&called))

	r, _ := supervisorAckRequest(`{"requireAck":true,"teamIds":["team-1"]}`)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.False(t, called)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAckAllowedNoSupervisorPathWithoutTeams(t *testing.T) {
	var called bool
	teams := &stubSupervisorReader{supervises: true}
	handler := Guards{Teams: teams}.RequireAckAllowed(passHandler(&called))

	r, _ := supervisorAckRequest(`{"requireAck":true}`)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.False(t, called)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Nil(t, teams.teamIDs)
}

func TestRequireAckAllowedSupervisorLookupFailure(t *testing.T) {
	var called bool
	teams := &stubSupervisorReader{err: errors.New("connection reset")}
	handler := Guards{Teams: teams}.RequireAckAllowed(passHandler(&called))

	r, _ := supervisorAckRequest(`{"requireAck":true,"teamIds":["team-1"]}`)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.False(t, called)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireAckAllowedRejectsEmployee(t *testing.T) {
	var called bool
	handler := Guards{}.RequireAckAllowed(passHandler(&called))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, ackRequest(`{"requireAck":true}`, "EMPLOYEE"))
	require.False(t, called)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "limited to admin, manager or supervisor")
}

func TestRequireAckAllowedRewindsBody(t *testing.T) {
	var decoded CreatePostRequest
	handler := Guards{}.RequireAckAllowed(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, httpx.DecodeJSON(r, &decoded))
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, ackRequest(`{"title":"quarterly update","requireAck":true}`, "HR_ADMIN"))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "quarterly update", decoded.Title)
	require.True(t, decoded.RequireAck)
}

func recipientRequest(postID string, sc *shared.Scope) *http.Request {
	r := httptest.NewRequest("POST", "/v1/communications/"+postID+"/ack", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", postID)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	if sc != nil {
		ctx = shared.ContextWithScope(ctx, sc)
	}
	return r.WithContext(ctx)
}

func TestRequireRecipientMissingIDNotFound(t *testing.T) {
	var called bool
	handler := Guards{Repo: stubRecipientReader{}}.RequireRecipient(passHandler(&called))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, recipientRequest("", &shared.Scope{
		TenantID:  "tenant-1",
		Principal: &shared.Principal{ID: "u1"},
	}))
	require.False(t, called)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequireRecipientMissingTenantUnauthorized(t *testing.T) {
	var called bool
	handler := Guards{Repo: stubRecipientReader{}}.RequireRecipient(passHandler(&called))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, recipientRequest("post-1", &shared.Scope{
		Principal: &shared.Principal{ID: "u1"},
	}))
	require.False(t, called)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRecipientMissingUserUnauthorized(t *testing.T) {
	var called bool
	handler := Guards{Repo: stubRecipientReader{}}.RequireRecipient(passHandler(&called))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, recipientRequest("post-1", &shared.Scope{TenantID: "tenant-1"}))
	require.False(t, called)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRecipientNotARecipientForbidden(t *testing.T) {
	var called bool
	handler := Guards{Repo: stubRecipientReader{err: httpx.ErrNotFound}}.RequireRecipient(passHandler(&called))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, recipientRequest("post-1", &shared.Scope{
		TenantID:  "tenant-1",
		Principal: &shared.Principal{ID: "u1"},
	}))
	require.False(t, called)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "not a required recipient")
}

func TestRequireRecipientTenantMismatchForbidden(t *testing.T) {
	var called bool
	handler := Guards{Repo: stubRecipientReader{tenant: "tenant-2"}}.RequireRecipient(passHandler(&called))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, recipientRequest("post-1", &shared.Scope{
		TenantID:  "tenant-1",
		Principal: &shared.Principal{ID: "u1"},
	}))
	require.False(t, called)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "tenant mismatch")
}

func TestRequireRecipientStoreFailureIsSystemError(t *testing.T) {
	var called bool
	handler := Guards{Repo: stubRecipientReader{err: errors.New("connection reset")}}.RequireRecipient(passHandler(&called))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, recipientRequest("post-1", &shared.Scope{
		TenantID:  "tenant-1",
		Principal: &shared.Principal{ID: "u1"},
	}))
	require.False(t, called)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireRecipientMatchPasses(t *testing.T) {
	var called bool
	handler := Guards{Repo: stubRecipientReader{tenant: "tenant-1"}}.RequireRecipient(passHandler(&called))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, recipientRequest("post-1", &shared.Scope{
		TenantID:  "tenant-1",
		Principal: &shared.Principal{ID: "u1"},
	}))
	require.True(t, called)
	require.Equal(t, http.StatusOK, w.Code)
}
