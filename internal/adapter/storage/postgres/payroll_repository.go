package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/lapeco-hr/internal/domain"
)

type PayrollRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewPayrollRepository(db *gorm.DB, log *zap.Logger) *PayrollRepository {
	return &PayrollRepository{db: db, log: log}
}

// FindRunsBetween returns runs whose period overlaps [start, end].
func (r *PayrollRepository) FindRunsBetween(ctx context.Context, start, end time.Time) ([]domain.PayrollRun, error) {
	defer observe(time.Now())

	var runs []domain.PayrollRun
	result := r.db.WithContext(ctx).
		Preload("Records", func(db *gorm.DB) *gorm.DB {
			return db.Order("employee_id")
		}).
		Where("period_start <= ? AND period_end >= ?", end, start).
		Order("period_start").Order("id").
		Find(&runs)
	if result.Error != nil {
		return nil, result.Error
	}
	return runs, nil
}

// FindRunsForEmployee returns runs holding a record for employeeID, with
// only that employee's records loaded.
func (r *PayrollRepository) FindRunsForEmployee(ctx context.Context, employeeID string) ([]domain.PayrollRun, error) {
	defer observe(time.Now())

	db := r.db.WithContext(ctx)
	withRecord := db.Model(&domain.PayrollRecord{}).Select("run_id").Where("employee_id = ?", employeeID)

	var runs []domain.PayrollRun
	result := db.
		Preload("Records", "employee_id = ?", employeeID).
		Where("id IN (?)", withRecord).
		Order("period_start DESC").Order("id").
		Find(&runs)
	if result.Error != nil {
		return nil, result.Error
	}
	return runs, nil
}

// ImportRun stores a run that only carries a legacy "<start> to <end>"
// period label.
func (r *PayrollRepository) ImportRun(ctx context.Context, id, label string, payDate time.Time, records []domain.PayrollRecord) (*domain.PayrollRun, error) {
	period, err := domain.ParsePayPeriodLabel(label)
	if err != nil {
		return nil, fmt.Errorf("import payroll run %s: %w", id, err)
	}

	for i := range records {
		records[i].RunID = id
		if records[i].ID == "" {
			records[i].ID = id + "-" + records[i].EmployeeID
		}
	}
	run := &domain.PayrollRun{
		ID:      id,
		Period:  period,
		PayDate: payDate,
		Records: records,
	}

	defer observe(time.Now())
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		r.log.Error("Failed to import payroll run", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return run, nil
}
