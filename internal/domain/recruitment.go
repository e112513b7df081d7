package domain

import "time"

type ApplicantStatus string

const (
	ApplicantNew       ApplicantStatus = "New Applicant"
	ApplicantScreening ApplicantStatus = "Screening"
	ApplicantInterview ApplicantStatus = "Interview"
	ApplicantOffer     ApplicantStatus = "Offer"
	ApplicantHired     ApplicantStatus = "Hired"
	ApplicantRejected  ApplicantStatus = "Rejected"
)

type Applicant struct {
	ID         string          `json:"id" gorm:"primaryKey"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	JobOpening string          `json:"job_opening" gorm:"index"`
	Status     ApplicantStatus `json:"status"`
	AppliedAt  time.Time       `json:"application_date" gorm:"index"`
}
