// Package rosters manages work rosters and shift pattern generation.
package rosters

import "time"

// Roster is one tenant-scoped scheduling period.
type Roster struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	Name      string    `json:"name"`
	StartsOn  time.Time `json:"startsOn"`
	EndsOn    time.Time `json:"endsOn"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Shift is one assignment of an employee to a working window.
type Shift struct {
	ID         string    `json:"id"`
	RosterID   string    `json:"rosterId"`
	TenantID   string    `json:"tenantId"`
	EmployeeID string    `json:"employeeId"`
	StartsAt   time.Time `json:"startsAt"`
	EndsAt     time.Time `json:"endsAt"`
	Label      string    `json:"label,omitempty"`
}

// PatternDay is one slot of a rotation pattern. An empty start marks a day off.
type PatternDay struct {
	Label     string `json:"label,omitempty"`
	StartHHMM string `json:"start,omitempty"`
	EndHHMM   string `json:"end,omitempty"`
}

// Off reports whether the slot is a rest day.
func (d PatternDay) Off() bool { return d.StartHHMM == "" }
