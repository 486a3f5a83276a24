// Package leave manages leave requests and balances.
package leave

import "time"

// Leave request status values.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Request is one leave request for an employee.
type Request struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenantId"`
	EmployeeID string    `json:"employeeId"`
	Type       string    `json:"type"`
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
	Reason     string    `json:"reason,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Balance is the remaining entitlement for one leave type.
type Balance struct {
	EmployeeID string  `json:"employeeId"`
	Type       string  `json:"type"`
	Accrued    float64 `json:"accrued"`
	Taken      float64 `json:"taken"`
	Remaining  float64 `json:"remaining"`
}
