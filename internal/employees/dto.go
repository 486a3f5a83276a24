package employees

import "time"

type CreateEmployeeRequest struct {
	GivenName     string    `json:"givenName" validate:"required,max=100"`
	FamilyName    string    `json:"familyName" validate:"required,max=100"`
	Email         string    `json:"email" validate:"required,email"`
	DepartmentID  string    `json:"departmentId,omitempty" validate:"omitempty,uuid"`
	PositionTitle string    `json:"positionTitle,omitempty" validate:"omitempty,max=150"`
	StartDate     time.Time `json:"startDate" validate:"required"`
}

type UpdateEmployeeRequest struct {
	GivenName     *string `json:"givenName,omitempty" validate:"omitempty,max=100"`
	FamilyName    *string `json:"familyName,omitempty" validate:"omitempty,max=100"`
	DepartmentID  *string `json:"departmentId,omitempty" validate:"omitempty,uuid"`
	PositionTitle *string `json:"positionTitle,omitempty" validate:"omitempty,max=150"`
	Status        *string `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE ON_LEAVE TERMINATED"`
}

type ListEmployeesRequest struct {
	Search string `json:"search,omitempty"`
	Limit  int    `json:"limit" validate:"gte=0,lte=200"`
	Offset int    `json:"offset" validate:"gte=0"`
}

// CostSplitInput is one entry of a replace-set of cost splits.
type CostSplitInput struct {
	CostCenter string     `json:"costCenter" validate:"required,max=50"`
	Percent    float64    `json:"percent" validate:"required"`
	From       time.Time  `json:"from" validate:"required"`
	To         *time.Time `json:"to,omitempty"`
}

type ReplaceCostSplitsRequest struct {
	Splits []CostSplitInput `json:"splits" validate:"required,dive"`
}
