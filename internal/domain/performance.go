package domain

import "time"

// KRA is a key result area; KPIs hang off it with percentage weights.
type KRA struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Position    string `json:"position" gorm:"index"`
}

type KPI struct {
	ID     string   `json:"id" gorm:"primaryKey"`
	KraID  string   `json:"kra_id" gorm:"index"`
	Title  string   `json:"title"`
	Weight *float64 `json:"weight,omitempty"`
}

// KraWeightSummary carries the KPI list of a KRA with its weight total.
// Balanced is advisory: an unbalanced KRA is still readable.
type KraWeightSummary struct {
	KRA         KRA     `json:"kra"`
	KPIs        []KPI   `json:"kpis"`
	TotalWeight float64 `json:"total_weight"`
	Balanced    bool    `json:"balanced"`
}

type EvaluationPeriod struct {
	Start time.Time `json:"period_start"`
	End   time.Time `json:"period_end"`
}

// ActivePeriod exposes the stored period verbatim plus whether evaluations
// are currently open.
type ActivePeriod struct {
	Period   *EvaluationPeriod `json:"period"`
	IsActive bool              `json:"is_active"`
}

func (KRA) TableName() string { return "kras" }

func (KPI) TableName() string { return "kpis" }
