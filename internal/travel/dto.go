package travel

import "time"

type CreateRequestRequest struct {
	EmployeeID    string    `json:"employeeId" validate:"required,uuid"`
	Destination   string    `json:"destination" validate:"required,max=200"`
	Purpose       string    `json:"purpose" validate:"required,max=500"`
	DepartsOn     time.Time `json:"departsOn" validate:"required"`
	ReturnsOn     time.Time `json:"returnsOn" validate:"required,gtefield=DepartsOn"`
	EstimatedCost float64   `json:"estimatedCost" validate:"gte=0"`
	Currency      string    `json:"currency" validate:"required,iso4217"`
}

type ListRequestsRequest struct {
	EmployeeID string `json:"employeeId,omitempty" validate:"omitempty,uuid"`
	Status     string `json:"status,omitempty" validate:"omitempty,oneof=PENDING APPROVED REJECTED"`
	Limit      int    `json:"limit" validate:"gte=0,lte=200"`
	Offset     int    `json:"offset" validate:"gte=0"`
}

type DecideRequestRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}
