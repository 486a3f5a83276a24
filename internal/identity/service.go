package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/language"

	"github.com/meridian-hris/meridian/internal/audit"
	"github.com/meridian-hris/meridian/internal/auth"
	"github.com/meridian-hris/meridian/internal/platform/cache"
	"github.com/meridian-hris/meridian/internal/platform/httpx"
	"github.com/meridian-hris/meridian/internal/shared"
)

const (
	defaultLocale   = "en-AU"
	defaultTimezone = "Australia/Sydney"
	defaultCurrency = "AUD"

	defaultPrimaryColor = "#004c97"
	defaultAccentColor  = "#1c7ed6"
)

// Service implements tenant and user provisioning plus login.
type Service struct {
	repo     Repository
	tokens   *auth.TokenService
	recorder *audit.Recorder
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *slog.Logger
	tokenTTL time.Duration
	now      func() time.Time
}

// NewService constructs the identity service. cacheClient may be nil.
func NewService(repo Repository, tokens *auth.TokenService, recorder *audit.Recorder,
	cacheClient *redis.Client, cacheTTL, tokenTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		tokens:   tokens,
		recorder: recorder,
		cache:    cacheClient,
		cacheTTL: cacheTTL,
		logger:   logger,
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// CreateTenant provisions a new tenant with default settings.
func (s *Service) CreateTenant(ctx context.Context, req CreateTenantRequest) (Tenant, error) {
	locale := req.Locale
	if locale == "" {
		locale = defaultLocale
	}
	if _, err := language.Parse(locale); err != nil {
		return Tenant{}, fmt.Errorf("%w: unknown locale %q", httpx.ErrValidation, req.Locale)
	}
	timezone := req.Timezone
	if timezone == "" {
		timezone = defaultTimezone
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return Tenant{}, fmt.Errorf("%w: unknown timezone %q", httpx.ErrValidation, req.Timezone)
	}
	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	now := s.now().UTC()
	tenant := Tenant{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Slug:     req.Slug,
		Locale:   locale,
		Timezone: timezone,
		Currency: currency,
		Settings: Settings{
			Branding: Branding{
				PrimaryColor: orDefault(req.PrimaryColor, defaultPrimaryColor),
				AccentColor:  orDefault(req.AccentColor, defaultAccentColor),
				SurfaceColor: "#ffffff",
			},
			SupportEmail: req.SupportEmail,
			UpdatedAt:    now,
		},
		CreatedAt: now,
	}
	if err := s.repo.CreateTenant(ctx, tenant); err != nil {
		return Tenant{}, err
	}
	return tenant, nil
}

// GetTenantSettings loads tenant settings by slug through the cache.
func (s *Service) GetTenantSettings(ctx context.Context, slug string) (Tenant, error) {
	key := "tenant:settings:" + slug
	if s.cache != nil {
		var cached Tenant
		err := cache.GetJSON(ctx, s.cache, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("tenant settings cache read", slog.Any("error", err))
		}
	}
	tenant, err := s.repo.GetTenantBySlug(ctx, slug)
	if err != nil {
		return Tenant{}, err
	}
	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, key, tenant, s.cacheTTL); err != nil {
			s.logger.Warn("tenant settings cache write", slog.Any("error", err))
		}
	}
	return tenant, nil
}

// CreateUser provisions a user inside the ambient tenant and audits the
// role assignment.
func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (User, error) {
	sc := shared.ScopeFromContext(ctx)
	if sc == nil || sc.TenantID == "" {
		return User{}, fmt.Errorf("%w: tenant context missing", httpx.ErrUnauthorized)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("identity: hash password: %w", err)
	}

	user := User{
		ID:           uuid.NewString(),
		TenantID:     sc.TenantID,
		Email:        req.Email,
		GivenName:    req.GivenName,
		FamilyName:   req.FamilyName,
		Roles:        req.Roles,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return User{}, err
	}
	if err := s.recorder.Record(ctx, "user", user.ID, "created", map[string]any{
		"roles": req.Roles,
	}); err != nil {
		return User{}, err
	}
	return user, nil
}

// Login validates credentials and issues a bearer token carrying the user's
// tenant and roles.
func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	tenant, err := s.repo.GetTenantBySlug(ctx, req.Tenant)
	if err != nil {
		return LoginResponse{}, shared.ErrInvalidCredentials
	}
	user, err := s.repo.FindUserByEmail(ctx, tenant.ID, req.Email)
	if err != nil {
		return LoginResponse{}, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return LoginResponse{}, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return LoginResponse{}, shared.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(shared.Principal{
		ID:     user.ID,
		Email:  user.Email,
		Tenant: user.TenantID,
		Roles:  user.Roles,
	})
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.tokenTTL.Seconds()),
	}, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
