package postgres

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/seu-repo/lapeco-hr/internal/domain"
	"github.com/seu-repo/lapeco-hr/internal/ports"
)

type PerformanceRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewPerformanceRepository(db *gorm.DB, log *zap.Logger) ports.PerformanceRepository {
	return &PerformanceRepository{db: db, log: log}
}

func (r *PerformanceRepository) FindKRAByID(ctx context.Context, id string) (*domain.KRA, error) {
	defer observe(time.Now())

	var kra domain.KRA
	result := r.db.WithContext(ctx).First(&kra, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &kra, nil
}

func (r *PerformanceRepository) FindKRAs(ctx context.Context) ([]domain.KRA, error) {
	defer observe(time.Now())

	var kras []domain.KRA
	if err := r.db.WithContext(ctx).Order("title").Order("id").Find(&kras).Error; err != nil {
		return nil, err
	}
	return kras, nil
}

func (r *PerformanceRepository) FindKPIsByKRA(ctx context.Context, kraID string) ([]domain.KPI, error) {
	defer observe(time.Now())

	var kpis []domain.KPI
	result := r.db.WithContext(ctx).Where("kra_id = ?", kraID).Order("id").Find(&kpis)
	if result.Error != nil {
		return nil, result.Error
	}
	return kpis, nil
}

// evaluationSettings is the single-row table holding the evaluation window.
type evaluationSettings struct {
	ID          int `gorm:"primaryKey;autoIncrement:false"`
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	UpdatedAt   time.Time
}

func (evaluationSettings) TableName() string { return "evaluation_settings" }

const settingsRowID = 1

type EvaluationPeriodRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewEvaluationPeriodRepository(db *gorm.DB, log *zap.Logger) ports.EvaluationPeriodRepository {
	return &EvaluationPeriodRepository{db: db, log: log}
}

func (r *EvaluationPeriodRepository) GetActive(ctx context.Context) (*domain.EvaluationPeriod, error) {
	defer observe(time.Now())

	var row evaluationSettings
	result := r.db.WithContext(ctx).First(&row, "id = ?", settingsRowID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	if row.PeriodStart == nil && row.PeriodEnd == nil {
		return nil, nil
	}

	period := &domain.EvaluationPeriod{}
	if row.PeriodStart != nil {
		period.Start = *row.PeriodStart
	}
	if row.PeriodEnd != nil {
		period.End = *row.PeriodEnd
	}
	return period, nil
}

// SetActive upserts the settings row. A nil period clears both bounds.
func (r *EvaluationPeriodRepository) SetActive(ctx context.Context, period *domain.EvaluationPeriod) error {
	defer observe(time.Now())

	row := evaluationSettings{ID: settingsRowID, UpdatedAt: time.Now().UTC()}
	if period != nil {
		start, end := period.Start, period.End
		row.PeriodStart = &start
		row.PeriodEnd = &end
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"period_start", "period_end", "updated_at"}),
	}).Create(&row)
	if result.Error != nil {
		r.log.Error("Failed to store evaluation period", zap.Error(result.Error))
		return result.Error
	}
	return nil
}
