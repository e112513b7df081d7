package postgres

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/lapeco-hr/internal/domain"
	"github.com/seu-repo/lapeco-hr/internal/ports"
)

type AttendanceRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAttendanceRepository(db *gorm.DB, log *zap.Logger) ports.AttendanceRepository {
	return &AttendanceRepository{db: db, log: log}
}

// FindBetween returns logs dated within [start, end], both inclusive.
func (r *AttendanceRepository) FindBetween(ctx context.Context, start, end time.Time) ([]domain.AttendanceLog, error) {
	defer observe(time.Now())

	var logs []domain.AttendanceLog
	result := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Order("date").Order("employee_id").
		Find(&logs)
	if result.Error != nil {
		return nil, result.Error
	}
	return logs, nil
}

type LeaveRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewLeaveRepository(db *gorm.DB, log *zap.Logger) ports.LeaveRepository {
	return &LeaveRepository{db: db, log: log}
}

func (r *LeaveRepository) FindByID(ctx context.Context, id string) (*domain.Leave, error) {
	defer observe(time.Now())

	var leave domain.Leave
	result := r.db.WithContext(ctx).First(&leave, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &leave, nil
}

// FindBetween returns leaves overlapping [start, end].
func (r *LeaveRepository) FindBetween(ctx context.Context, start, end time.Time) ([]domain.Leave, error) {
	defer observe(time.Now())

	var leaves []domain.Leave
	result := r.db.WithContext(ctx).
		Where("date_from <= ? AND date_to >= ?", end, start).
		Order("date_from").Order("id").
		Find(&leaves)
	if result.Error != nil {
		return nil, result.Error
	}
	return leaves, nil
}
