package domain

import "time"

type EmployeeStatus string

const (
	EmployeeStatusActive     EmployeeStatus = "Active"
	EmployeeStatusInactive   EmployeeStatus = "Inactive"
	EmployeeStatusTerminated EmployeeStatus = "Terminated"
)

type Employee struct {
	ID          string         `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name"`
	Email       string         `json:"email" gorm:"uniqueIndex"`
	Position    string         `json:"position"`
	Department  string         `json:"department" gorm:"index"`
	JoiningDate time.Time      `json:"joining_date"`
	Status      EmployeeStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
