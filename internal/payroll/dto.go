package payroll

import "time"

type CreateRunRequest struct {
	PeriodStart time.Time `json:"periodStart" validate:"required"`
	PeriodEnd   time.Time `json:"periodEnd" validate:"required,gtfield=PeriodStart"`
	PayDate     time.Time `json:"payDate" validate:"required"`
}

type ListRunsRequest struct {
	Status string `json:"status,omitempty" validate:"omitempty,oneof=DRAFT PROCESSED PAID"`
	Limit  int    `json:"limit" validate:"gte=0,lte=200"`
	Offset int    `json:"offset" validate:"gte=0"`
}
