package domain

import "time"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceLate    AttendanceStatus = "Late"
	AttendanceAbsent  AttendanceStatus = "Absent"
)

type AttendanceLog struct {
	ID         string           `json:"id" gorm:"primaryKey"`
	EmployeeID string           `json:"employee_id" gorm:"index"`
	Date       time.Time        `json:"date" gorm:"index"`
	SignIn     *time.Time       `json:"sign_in,omitempty"`
	SignOut    *time.Time       `json:"sign_out,omitempty"`
	Status     AttendanceStatus `json:"status"`
}

type Leave struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	EmployeeID     string    `json:"employee_id" gorm:"index"`
	Type           string    `json:"type"`
	DateFrom       time.Time `json:"date_from"`
	DateTo         time.Time `json:"date_to"`
	Status         string    `json:"status"`
	AttachmentPath string    `json:"attachment_path,omitempty"`
}

// Blob is an opaque stored artifact with its declared content type.
type Blob struct {
	ContentType string
	Filename    string
	Data        []byte
}

// FetchedPayload is what the transport returned for a stored artifact,
// before any content inspection.
type FetchedPayload struct {
	StatusCode  int
	ContentType string
	Filename    string
	Body        []byte
}
