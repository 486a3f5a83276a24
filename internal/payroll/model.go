// Package payroll manages pay runs and payslips.
package payroll

import "time"

// Pay run status values.
const (
	StatusDraft     = "DRAFT"
	StatusProcessed = "PROCESSED"
	StatusPaid      = "PAID"
)

// Run is one pay cycle for a tenant.
type Run struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenantId"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
	PayDate     time.Time `json:"payDate"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Payslip is one employee's result within a run.
type Payslip struct {
	ID         string    `json:"id"`
	RunID      string    `json:"runId"`
	TenantID   string    `json:"tenantId"`
	EmployeeID string    `json:"employeeId"`
	Gross      float64   `json:"gross"`
	Tax        float64   `json:"tax"`
	Super      float64   `json:"super"`
	Net        float64   `json:"net"`
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"createdAt"`
}
