package domain

import (
	"fmt"
	"strings"
	"time"
)

// PayPeriodSeparator joins the two dates of a legacy pay-period label,
// e.g. "2024-01-01 to 2024-01-15".
const PayPeriodSeparator = " to "

const dateLayout = "2006-01-02"

type PayPeriod struct {
	Start time.Time `json:"start" gorm:"column:period_start;index"`
	End   time.Time `json:"end" gorm:"column:period_end"`
}

// Label renders the period in the legacy "<start> to <end>" form.
func (p PayPeriod) Label() string {
	return p.Start.Format(dateLayout) + PayPeriodSeparator + p.End.Format(dateLayout)
}

// ParsePayPeriodLabel converts a legacy label into a structured period.
// Only used when importing runs that carry nothing but the label.
func ParsePayPeriodLabel(label string) (PayPeriod, error) {
	start, end, ok := strings.Cut(label, PayPeriodSeparator)
	if !ok {
		return PayPeriod{}, fmt.Errorf("pay period %q: missing separator %q", label, strings.TrimSpace(PayPeriodSeparator))
	}
	s, err := time.Parse(dateLayout, strings.TrimSpace(start))
	if err != nil {
		return PayPeriod{}, fmt.Errorf("pay period %q: start: %w", label, err)
	}
	e, err := time.Parse(dateLayout, strings.TrimSpace(end))
	if err != nil {
		return PayPeriod{}, fmt.Errorf("pay period %q: end: %w", label, err)
	}
	return PayPeriod{Start: s, End: e}, nil
}

type PayrollRun struct {
	ID        string          `json:"id" gorm:"primaryKey"`
	Period    PayPeriod       `json:"period" gorm:"embedded"`
	PayDate   time.Time       `json:"pay_date"`
	IsPaid    bool            `json:"is_paid"`
	Records   []PayrollRecord `json:"records,omitempty" gorm:"foreignKey:RunID"`
	CreatedAt time.Time       `json:"created_at"`
}

type PayrollRecord struct {
	ID         string  `json:"id" gorm:"primaryKey"`
	RunID      string  `json:"run_id" gorm:"index"`
	EmployeeID string  `json:"employee_id" gorm:"index"`
	GrossPay   float64 `json:"gross_pay"`
	Deductions float64 `json:"total_deductions"`
	NetPay     float64 `json:"net_pay"`
	PaidStatus string  `json:"status"`
}

// PayrollHistoryEntry pairs a run with the one record in it that belongs
// to a given employee. It is a read-only projection, never persisted.
type PayrollHistoryEntry struct {
	RunID   string        `json:"run_id"`
	Period  PayPeriod     `json:"period"`
	PayDate time.Time     `json:"pay_date"`
	Record  PayrollRecord `json:"record"`
}
