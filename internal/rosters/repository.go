package rosters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-hris/meridian/internal/platform/httpx"
)

// Repository is the roster data access surface.
type Repository interface {
	Create(ctx context.Context, roster Roster) error
	Get(ctx context.Context, tenantID, id string) (Roster, error)
	List(ctx context.Context, tenantID string, limit, offset int) ([]Roster, error)
	ReplaceShifts(ctx context.Context, tenantID, rosterID string, shifts []Shift) error
	ListShifts(ctx context.Context, tenantID, rosterID string) ([]Shift, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns a Postgres-backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, roster Roster) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO rosters (id, tenant_id, name, starts_on, ends_on, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		roster.ID, roster.TenantID, roster.Name, roster.StartsOn, roster.EndsOn,
		roster.CreatedAt, roster.UpdatedAt)
	return err
}

func (r *repository) Get(ctx context.Context, tenantID, id string) (Roster, error) {
	var roster Roster
	err := r.db.QueryRow(ctx,
		`SELECT id, tenant_id, name, starts_on, ends_on, created_at, updated_at
		 FROM rosters WHERE tenant_id = $1 AND id = $2`, tenantID, id).
		Scan(&roster.ID, &roster.TenantID, &roster.Name, &roster.StartsOn,
			&roster.EndsOn, &roster.CreatedAt, &roster.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Roster{}, httpx.ErrNotFound
	}
	return roster, err
}

func (r *repository) List(ctx context.Context, tenantID string, limit, offset int) ([]Roster, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, tenant_id, name, starts_on, ends_on, created_at, updated_at
		 FROM rosters WHERE tenant_id = $1
		 ORDER BY starts_on DESC LIMIT $2 OFFSET $3`, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rosters []Roster
	for rows.Next() {
		var roster Roster
		if err := rows.Scan(&roster.ID, &roster.TenantID, &roster.Name, &roster.StartsOn,
			&roster.EndsOn, &roster.CreatedAt, &roster.UpdatedAt); err != nil {
			return nil, err
		}
		rosters = append(rosters, roster)
	}
	return rosters, rows.Err()
}

func (r *repository) ReplaceShifts(ctx context.Context, tenantID, rosterID string, shifts []Shift) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`DELETE FROM roster_shifts WHERE tenant_id = $1 AND roster_id = $2`,
		tenantID, rosterID); err != nil {
		return err
	}
	for _, shift := range shifts {
		if _, err := tx.Exec(ctx,
			`INSERT INTO roster_shifts (id, roster_id, tenant_id, employee_id, starts_at, ends_at, label)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			shift.ID, shift.RosterID, shift.TenantID, shift.EmployeeID,
			shift.StartsAt, shift.EndsAt, shift.Label); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *repository) ListShifts(ctx context.Context, tenantID, rosterID string) ([]Shift, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, roster_id, tenant_id, employee_id, starts_at, ends_at, label
		 FROM roster_shifts WHERE tenant_id = $1 AND roster_id = $2
		 ORDER BY starts_at, employee_id`, tenantID, rosterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []Shift
	for rows.Next() {
		var shift Shift
		if err := rows.Scan(&shift.ID, &shift.RosterID, &shift.TenantID, &shift.EmployeeID,
			&shift.StartsAt, &shift.EndsAt, &shift.Label); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}
	return shifts, rows.Err()
}
