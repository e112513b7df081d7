package domain

import "time"

type TrainingProgram struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title"`
	Provider    string    `json:"provider"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Description string    `json:"description"`
}

type Enrollment struct {
	ID         string  `json:"id" gorm:"primaryKey"`
	ProgramID  string  `json:"program_id" gorm:"index"`
	EmployeeID string  `json:"employee_id" gorm:"index"`
	Status     string  `json:"status"`
	Progress   float64 `json:"progress"`
}
