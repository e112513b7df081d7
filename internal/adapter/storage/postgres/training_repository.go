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

type TrainingRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewTrainingRepository(db *gorm.DB, log *zap.Logger) ports.TrainingRepository {
	return &TrainingRepository{db: db, log: log}
}

func (r *TrainingRepository) FindProgramByID(ctx context.Context, id string) (*domain.TrainingProgram, error) {
	defer observe(time.Now())

	var p domain.TrainingProgram
	result := r.db.WithContext(ctx).First(&p, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &p, nil
}

func (r *TrainingRepository) FindEnrollments(ctx context.Context, programID string) ([]domain.Enrollment, error) {
	defer observe(time.Now())

	var enrollments []domain.Enrollment
	result := r.db.WithContext(ctx).
		Where("program_id = ?", programID).
		Order("id").
		Find(&enrollments)
	if result.Error != nil {
		return nil, result.Error
	}
	return enrollments, nil
}
