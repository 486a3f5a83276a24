package employees

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-hris/meridian/internal/platform/httpx"
)

// Repository is the employees data access surface.
type Repository interface {
	List(ctx context.Context, tenantID string, req ListEmployeesRequest) ([]Employee, error)
	Get(ctx context.Context, tenantID, id string) (Employee, error)
	Create(ctx context.Context, employee Employee) error
	Update(ctx context.Context, employee Employee) error
	ReplaceCostSplits(ctx context.Context, tenantID, employeeID string, splits []CostSplit) error
	ListCostSplits(ctx context.Context, tenantID, employeeID string) ([]CostSplit, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns a Postgres-backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const employeeColumns = `id, tenant_id, given_name, family_name, email, department_id,
	position_title, start_date, status, created_at, updated_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.TenantID, &e.GivenName, &e.FamilyName, &e.Email,
		&e.DepartmentID, &e.PositionTitle, &e.StartDate, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, httpx.ErrNotFound
	}
	return e, err
}

func (r *repository) List(ctx context.Context, tenantID string, req ListEmployeesRequest) ([]Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE tenant_id = $1`
	args := []any{tenantID}
	argCount := 1

	if req.Search != "" {
		argCount++
		placeholder := `$` + strconv.Itoa(argCount)
		query += ` AND (given_name ILIKE ` + placeholder + ` OR family_name ILIKE ` + placeholder +
			` OR email ILIKE ` + placeholder + `)`
		args = append(args, "%"+req.Search+"%")
	}

	query += ` ORDER BY family_name, given_name`
	argCount++
	query += ` LIMIT $` + strconv.Itoa(argCount)
	args = append(args, req.Limit)
	argCount++
	query += ` OFFSET $` + strconv.Itoa(argCount)
	args = append(args, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

func (r *repository) Get(ctx context.Context, tenantID, id string) (Employee, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE tenant_id = $1 AND id = $2`,
		tenantID, id)
	return scanEmployee(row)
}

func (r *repository) Create(ctx context.Context, e Employee) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO employees (id, tenant_id, given_name, family_name, email, department_id,
		   position_title, start_date, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, e.TenantID, e.GivenName, e.FamilyName, e.Email, e.DepartmentID,
		e.PositionTitle, e.StartDate, e.Status, e.CreatedAt, e.UpdatedAt)
	return err
}

func (r *repository) Update(ctx context.Context, e Employee) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE employees SET given_name = $1, family_name = $2, department_id = $3,
		   position_title = $4, status = $5, updated_at = $6
		 WHERE tenant_id = $7 AND id = $8`,
		e.GivenName, e.FamilyName, e.DepartmentID, e.PositionTitle, e.Status,
		e.UpdatedAt, e.TenantID, e.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) ReplaceCostSplits(ctx context.Context, tenantID, employeeID string, splits []CostSplit) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`DELETE FROM employee_cost_splits WHERE tenant_id = $1 AND employee_id = $2`,
		tenantID, employeeID); err != nil {
		return err
	}
	for _, split := range splits {
		if _, err := tx.Exec(ctx,
			`INSERT INTO employee_cost_splits (id, employee_id, tenant_id, cost_center, percent, valid_from, valid_to)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			split.ID, split.EmployeeID, split.TenantID, split.CostCenter,
			split.Percent, split.From, split.To); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *repository) ListCostSplits(ctx context.Context, tenantID, employeeID string) ([]CostSplit, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, employee_id, tenant_id, cost_center, percent, valid_from, valid_to
		 FROM employee_cost_splits WHERE tenant_id = $1 AND employee_id = $2
		 ORDER BY valid_from`, tenantID, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var splits []CostSplit
	for rows.Next() {
		var split CostSplit
		if err := rows.Scan(&split.ID, &split.EmployeeID, &split.TenantID,
			&split.CostCenter, &split.Percent, &split.From, &split.To); err != nil {
			return nil, err
		}
		splits = append(splits, split)
	}
	return splits, rows.Err()
}
