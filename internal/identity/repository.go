package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-hris/meridian/internal/platform/httpx"
)

const uniqueViolation = "23505"

// Repository is the identity data access surface.
type Repository interface {
	CreateTenant(ctx context.Context, tenant Tenant) error
	GetTenantBySlug(ctx context.Context, slug string) (Tenant, error)
	CreateUser(ctx context.Context, user User) error
	FindUserByEmail(ctx context.Context, tenantID, email string) (User, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns a Postgres-backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTenant(ctx context.Context, tenant Tenant) error {
	settings, err := json.Marshal(tenant.Settings)
	if err != nil {
		return fmt.Errorf("identity: marshal settings: %w", err)
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO tenants (id, name, slug, locale, timezone, currency, settings, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		tenant.ID, tenant.Name, tenant.Slug, tenant.Locale, tenant.Timezone,
		tenant.Currency, settings, tenant.CreatedAt)
	return mapPGError(err)
}

func (r *repository) GetTenantBySlug(ctx context.Context, slug string) (Tenant, error) {
	var (
		tenant   Tenant
		settings []byte
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, name, slug, locale, timezone, currency, settings, created_at
		 FROM tenants WHERE slug = $1`, slug).Scan(
		&tenant.ID, &tenant.Name, &tenant.Slug, &tenant.Locale, &tenant.Timezone,
		&tenant.Currency, &settings, &tenant.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Tenant{}, httpx.ErrNotFound
	}
	if err != nil {
		return Tenant{}, err
	}
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &tenant.Settings); err != nil {
			return Tenant{}, fmt.Errorf("identity: unmarshal settings: %w", err)
		}
	}
	return tenant, nil
}

func (r *repository) CreateUser(ctx context.Context, user User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, tenant_id, email, given_name, family_name, roles, password_hash, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.TenantID, user.Email, user.GivenName, user.FamilyName,
		user.Roles, user.PasswordHash, user.IsActive, user.CreatedAt)
	return mapPGError(err)
}

func (r *repository) FindUserByEmail(ctx context.Context, tenantID, email string) (User, error) {
	var user User
	err := r.db.QueryRow(ctx,
		`SELECT id, tenant_id, email, given_name, family_name, roles, password_hash, is_active, created_at
		 FROM users WHERE tenant_id = $1 AND email = $2`, tenantID, email).Scan(
		&user.ID, &user.TenantID, &user.Email, &user.GivenName, &user.FamilyName,
		&user.Roles, &user.PasswordHash, &user.IsActive, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, httpx.ErrNotFound
	}
	return user, err
}

// mapPGError converts unique violations into the duplicate sentinel.
func mapPGError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", httpx.ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}
