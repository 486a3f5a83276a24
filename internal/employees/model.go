// Package employees manages employee profiles and cost splits.
package employees

import "time"

// Employee is one tenant-scoped staff record.
type Employee struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenantId"`
	GivenName     string    `json:"givenName"`
	FamilyName    string    `json:"familyName"`
	Email         string    `json:"email"`
	DepartmentID  string    `json:"departmentId,omitempty"`
	PositionTitle string    `json:"positionTitle,omitempty"`
	StartDate     time.Time `json:"startDate"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Employee status values.
const (
	StatusActive     = "ACTIVE"
	StatusOnLeave    = "ON_LEAVE"
	StatusTerminated = "TERMINATED"
)

// CostSplit charges a fraction of an employee's cost to a cost centre over
// an effective period. An open-ended split has a nil To.
type CostSplit struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	TenantID   string     `json:"tenantId"`
	CostCenter string     `json:"costCenter"`
	Percent    float64    `json:"percent"`
	From       time.Time  `json:"from"`
	To         *time.Time `json:"to,omitempty"`
}
