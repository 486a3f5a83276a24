package travel

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-hris/meridian/internal/platform/httpx"
)

// Repository is the travel data access surface.
type Repository interface {
	Create(ctx context.Context, req Request) error
	Get(ctx context.Context, tenantID, id string) (Request, error)
	List(ctx context.Context, tenantID string, filter ListRequestsRequest) ([]Request, error)
	UpdateStatus(ctx context.Context, tenantID, id, status string) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns a Postgres-backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const requestColumns = `id, tenant_id, employee_id, destination, purpose, departs_on,
	returns_on, estimated_cost, currency, status, created_at, updated_at`

func scanRequest(row pgx.Row) (Request, error) {
	var req Request
	err := row.Scan(&req.ID, &req.TenantID, &req.EmployeeID, &req.Destination, &req.Purpose,
		&req.DepartsOn, &req.ReturnsOn, &req.EstimatedCost, &req.Currency, &req.Status,
		&req.CreatedAt, &req.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, httpx.ErrNotFound
	}
	return req, err
}

func (r *repository) Create(ctx context.Context, req Request) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO travel_requests (id, tenant_id, employee_id, destination, purpose, departs_on,
		   returns_on, estimated_cost, currency, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		req.ID, req.TenantID, req.EmployeeID, req.Destination, req.Purpose, req.DepartsOn,
		req.ReturnsOn, req.EstimatedCost, req.Currency, req.Status, req.CreatedAt, req.UpdatedAt)
	return err
}

func (r *repository) Get(ctx context.Context, tenantID, id string) (Request, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM travel_requests WHERE tenant_id = $1 AND id = $2`,
		tenantID, id)
	return scanRequest(row)
}

func (r *repository) List(ctx context.Context, tenantID string, filter ListRequestsRequest) ([]Request, error) {
	query := `SELECT ` + requestColumns + ` FROM travel_requests WHERE tenant_id = $1`
	args := []any{tenantID}
	argCount := 1

	if filter.EmployeeID != "" {
		argCount++
		query += ` AND employee_id = $` + strconv.Itoa(argCount)
		args = append(args, filter.EmployeeID)
	}
	if filter.Status != "" {
		argCount++
		query += ` AND status = $` + strconv.Itoa(argCount)
		args = append(args, filter.Status)
	}

	query += ` ORDER BY created_at DESC`
	argCount++
	query += ` LIMIT $` + strconv.Itoa(argCount)
	args = append(args, filter.Limit)
	argCount++
	query += ` OFFSET $` + strconv.Itoa(argCount)
	args = append(args, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, tenantID, id, status string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE travel_requests SET status = $1, updated_at = now() WHERE tenant_id = $2 AND id = $3`,
		status, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
