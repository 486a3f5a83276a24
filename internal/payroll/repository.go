package payroll

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-hris/meridian/internal/platform/httpx"
)

// Repository is the payroll data access surface.
type Repository interface {
	CreateRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, tenantID, id string) (Run, error)
	ListRuns(ctx context.Context, tenantID string, filter ListRunsRequest) ([]Run, error)
	ListPayslips(ctx context.Context, tenantID, runID string) ([]Payslip, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns a Postgres-backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const runColumns = `id, tenant_id, period_start, period_end, pay_date, status, created_at, updated_at`

func scanRun(row pgx.Row) (Run, error) {
	var run Run
	err := row.Scan(&run.ID, &run.TenantID, &run.PeriodStart, &run.PeriodEnd,
		&run.PayDate, &run.Status, &run.CreatedAt, &run.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Run{}, httpx.ErrNotFound
	}
	return run, err
}

func (r *repository) CreateRun(ctx context.Context, run Run) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO payroll_runs (id, tenant_id, period_start, period_end, pay_date, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		run.ID, run.TenantID, run.PeriodStart, run.PeriodEnd, run.PayDate,
		run.Status, run.CreatedAt, run.UpdatedAt)
	return err
}

func (r *repository) GetRun(ctx context.Context, tenantID, id string) (Run, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+runColumns+` FROM payroll_runs WHERE tenant_id = $1 AND id = $2`,
		tenantID, id)
	return scanRun(row)
}

func (r *repository) ListRuns(ctx context.Context, tenantID string, filter ListRunsRequest) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE tenant_id = $1`
	args := []any{tenantID}
	argCount := 1

	if filter.Status != "" {
		argCount++
		query += ` AND status = $` + strconv.Itoa(argCount)
		args = append(args, filter.Status)
	}

	query += ` ORDER BY period_start DESC`
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

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *repository) ListPayslips(ctx context.Context, tenantID, runID string) ([]Payslip, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, run_id, tenant_id, employee_id, gross, tax, super, net, currency, created_at
		 FROM payslips WHERE tenant_id = $1 AND run_id = $2
		 ORDER BY employee_id`, tenantID, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slips []Payslip
	for rows.Next() {
		var slip Payslip
		if err := rows.Scan(&slip.ID, &slip.RunID, &slip.TenantID, &slip.EmployeeID,
			&slip.Gross, &slip.Tax, &slip.Super, &slip.Net, &slip.Currency, &slip.CreatedAt); err != nil {
			return nil, err
		}
		slips = append(slips, slip)
	}
	return slips, rows.Err()
}
