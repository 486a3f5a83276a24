// Package travel manages business travel requests.
package travel

import "time"

// Travel request status values.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Request is one travel request for an employee.
type Request struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenantId"`
	EmployeeID    string    `json:"employeeId"`
	Destination   string    `json:"destination"`
	Purpose       string    `json:"purpose"`
	DepartsOn     time.Time `json:"departsOn"`
	ReturnsOn     time.Time `json:"returnsOn"`
	EstimatedCost float64   `json:"estimatedCost"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
