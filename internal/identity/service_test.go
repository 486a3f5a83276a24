package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/meridian-hris/meridian/internal/audit"
	"github.com/meridian-hris/meridian/internal/auth"
	"github.com/meridian-hris/meridian/internal/platform/httpx"
	"github.com/meridian-hris/meridian/internal/shared"
)

type stubIdentityRepo struct {
	tenants map[string]Tenant
	users   map[string]User
}

func newStubIdentityRepo() *stubIdentityRepo {
	return &stubIdentityRepo{tenants: map[string]Tenant{}, users: map[string]User{}}
}

func (s *stubIdentityRepo) CreateTenant(_ context.Context, tenant Tenant) error {
	if _, exists := s.tenants[tenant.Slug]; exists {
		return httpx.ErrDuplicate
	}
	s.tenants[tenant.Slug] = tenant
	return nil
}

func (s *stubIdentityRepo) GetTenantBySlug(_ context.Context, slug string) (Tenant, error) {
	tenant, ok := s.tenants[slug]
	if !ok {
		return Tenant{}, httpx.ErrNotFound
	}
	return tenant, nil
}

func (s *stubIdentityRepo) CreateUser(_ context.Context, user User) error {
	s.users[user.TenantID+":"+user.Email] = user
	return nil
}

func (s *stubIdentityRepo) FindUserByEmail(_ context.Context, tenantID, email string) (User, error) {
	user, ok := s.users[tenantID+":"+email]
	if !ok {
		return User{}, httpx.ErrNotFound
	}
	return user, nil
}

type nullStore struct{}

func (nullStore) Insert(context.Context, audit.Event) error { return nil }

func newIdentityService(repo Repository) *Service {
	tokens := auth.NewTokenService("test-secret-test-secret-32bytes!", "meridian-test", time.Hour)
	recorder := audit.NewRecorder(nullStore{}, nil, nil)
	return NewService(repo, tokens, recorder, nil, time.Minute, time.Hour, nil)
}

func TestCreateTenantAppliesDefaults(t *testing.T) {
	svc := newIdentityService(newStubIdentityRepo())

	tenant, err := svc.CreateTenant(context.Background(), CreateTenantRequest{
		Name: "Acme", Slug: "acme",
	})
	require.NoError(t, err)
	require.Equal(t, "en-AU", tenant.Locale)
	require.Equal(t, "Australia/Sydney", tenant.Timezone)
	require.Equal(t, "AUD", tenant.Currency)
	require.Equal(t, "#004c97", tenant.Settings.Branding.PrimaryColor)
	require.NotEmpty(t, tenant.ID)
}

func TestCreateTenantRejectsUnknownLocale(t *testing.T) {
	svc := newIdentityService(newStubIdentityRepo())

	_, err := svc.CreateTenant(context.Background(), CreateTenantRequest{
		Name: "Acme", Slug: "acme", Locale: "not-a-locale!!",
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreateTenantRejectsUnknownTimezone(t *testing.T) {
	svc := newIdentityService(newStubIdentityRepo())

	_, err := svc.CreateTenant(context.Background(), CreateTenantRequest{
		Name: "Acme", Slug: "acme", Timezone: "Mars/Olympus",
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreateUserRequiresTenantScope(t *testing.T) {
	svc := newIdentityService(newStubIdentityRepo())

	_, err := svc.CreateUser(context.Background(), CreateUserRequest{
		Email: "a@b.co", GivenName: "A", FamilyName: "B",
		Password: "supersecret123", Roles: []string{"EMPLOYEE"},
	})
	require.ErrorIs(t, err, httpx.ErrUnauthorized)
}

func TestCreateUserHashesPassword(t *testing.T) {
	repo := newStubIdentityRepo()
	svc := newIdentityService(repo)

	ctx := shared.ContextWithScope(context.Background(), &shared.Scope{TenantID: "tenant-1"})
	user, err := svc.CreateUser(ctx, CreateUserRequest{
		Email: "a@b.co", GivenName: "A", FamilyName: "B",
		Password: "supersecret123", Roles: []string{"EMPLOYEE"},
	})
	require.NoError(t, err)
	require.NotEqual(t, "supersecret123", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret123")))
	require.True(t, user.IsActive)
}

func seedUser(t *testing.T, repo *stubIdentityRepo, password string, active bool) {
	t.Helper()
	repo.tenants["acme"] = Tenant{ID: "tenant-1", Slug: "acme"}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	repo.users["tenant-1:a@b.co"] = User{
		ID: "user-1", TenantID: "tenant-1", Email: "a@b.co",
		Roles: []string{"HR_ADMIN"}, PasswordHash: string(hash), IsActive: active,
	}
}

func TestLoginSuccessIssuesToken(t *testing.T) {
	repo := newStubIdentityRepo()
	seedUser(t, repo, "correct horse", true)
	svc := newIdentityService(repo)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email: "a@b.co", Password: "correct horse", Tenant: "acme",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "Bearer", resp.TokenType)
	require.Equal(t, int64(3600), resp.ExpiresIn)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newStubIdentityRepo()
	seedUser(t, repo, "correct horse", true)
	svc := newIdentityService(repo)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email: "a@b.co", Password: "wrong", Tenant: "acme",
	})
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestLoginUnknownTenant(t *testing.T) {
	svc := newIdentityService(newStubIdentityRepo())

	_, err := svc.Login(context.Background(), LoginRequest{
		Email: "a@b.co", Password: "x", Tenant: "ghost",
	})
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	repo := newStubIdentityRepo()
	seedUser(t, repo, "correct horse", false)
	svc := newIdentityService(repo)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email: "a@b.co", Password: "correct horse", Tenant: "acme",
	})
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}
