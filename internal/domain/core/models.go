package core

import "time"

const (
	EmploymentActive     = "active"
	EmploymentTerminated = "terminated"
)

type Employee struct {
	ID                 string     `json:"id"`
	FirstName          string     `json:"firstName"`
	LastName           string     `json:"lastName"`
	Email              string     `json:"email"`
	Department         string     `json:"department"`
	HiringDate         *time.Time `json:"hiringDate,omitempty"`
	CarriedForwardDays int        `json:"carriedForwardDays"`
	ManagerID          string     `json:"managerId,omitempty"`
	Status             string     `json:"status"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}
