package leave

import "time"

type CreateRequestRequest struct {
	EmployeeID string    `json:"employeeId" validate:"required,uuid"`
	Type       string    `json:"type" validate:"required,oneof=ANNUAL PERSONAL UNPAID PARENTAL LONG_SERVICE"`
	From       time.Time `json:"from" validate:"required"`
	To         time.Time `json:"to" validate:"required,gtefield=From"`
	Reason     string    `json:"reason,omitempty" validate:"omitempty,max=500"`
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
