package leave

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-hris/meridian/internal/platform/httpx"
)

// Repository is the leave data access surface.
type Repository interface {
	CreateRequest(ctx context.Context, req Request) error
	GetRequest(ctx context.Context, tenantID, id string) (Request, error)
	ListRequests(ctx context.Context, tenantID string, filter ListRequestsRequest) ([]Request, error)
	UpdateStatus(ctx context.Context, tenantID, id, status string) error
	Balances(ctx context.Context, tenantID, employeeID string) ([]Balance, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns a Postgres-backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const requestColumns = `id, tenant_id, employee_id, leave_type, starts_on, ends_on,
	reason, status, created_at, updated_at`

func scanRequest(row pgx.Row) (Request, error) {
	var req Request
	err := row.Scan(&req.ID, &req.TenantID, &req.EmployeeID, &req.Type, &req.From,
		&req.To, &req.Reason, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, httpx.ErrNotFound
	}
	return req, err
}

func (r *repository) CreateRequest(ctx context.Context, req Request) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO leave_requests (id, tenant_id, employee_id, leave_type, starts_on, ends_on,
		   reason, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		req.ID, req.TenantID, req.EmployeeID, req.Type, req.From, req.To,
		req.Reason, req.Status, req.CreatedAt, req.UpdatedAt)
	return err
}

func (r *repository) GetRequest(ctx context.Context, tenantID, id string) (Request, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM leave_requests WHERE tenant_id = $1 AND id = $2`,
		tenantID, id)
	return scanRequest(row)
}

func (r *repository) ListRequests(ctx context.Context, tenantID string, filter ListRequestsRequest) ([]Request, error) {
	query := `SELECT ` + requestColumns + ` FROM leave_requests WHERE tenant_id = $1`
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
		`UPDATE leave_requests SET status = $1, updated_at = now() WHERE tenant_id = $2 AND id = $3`,
		status, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) Balances(ctx context.Context, tenantID, employeeID string) ([]Balance, error) {
	rows, err := r.db.Query(ctx,
		`SELECT employee_id, leave_type, accrued, taken
		 FROM leave_balances WHERE tenant_id = $1 AND employee_id = $2
		 ORDER BY leave_type`, tenantID, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []Balance
	for rows.Next() {
		var b Balance
		if err := rows.Scan(&b.EmployeeID, &b.Type, &b.Accrued, &b.Taken); err != nil {
			return nil, err
		}
		b.Remaining = b.Accrued - b.Taken
		balances = append(balances, b)
	}
	return balances, rows.Err()
}
