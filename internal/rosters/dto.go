package rosters

import "time"

type CreateRosterRequest struct {
	Name     string    `json:"name" validate:"required,max=150"`
	StartsOn time.Time `json:"startsOn" validate:"required"`
	EndsOn   time.Time `json:"endsOn" validate:"required,gtfield=StartsOn"`
}

type ListRostersRequest struct {
	Limit  int `json:"limit" validate:"gte=0,lte=200"`
	Offset int `json:"offset" validate:"gte=0"`
}

type GenerateShiftsRequest struct {
	Pattern     []PatternDay `json:"pattern" validate:"required,min=1"`
	EmployeeIDs []string     `json:"employeeIds" validate:"required,min=1,dive,uuid"`
	From        time.Time    `json:"from" validate:"required"`
	Days        int          `json:"days" validate:"required,gte=1,lte=366"`
}
