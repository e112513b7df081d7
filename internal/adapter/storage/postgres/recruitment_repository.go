package postgres

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/lapeco-hr/internal/domain"
	"github.com/seu-repo/lapeco-hr/internal/ports"
)

type ApplicantRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewApplicantRepository(db *gorm.DB, log *zap.Logger) ports.ApplicantRepository {
	return &ApplicantRepository{db: db, log: log}
}

func (r *ApplicantRepository) FindAppliedBetween(ctx context.Context, start, end time.Time) ([]domain.Applicant, error) {
	defer observe(time.Now())

	// end is a calendar day; include everything that happened on it.
	until := end.AddDate(0, 0, 1)

	var applicants []domain.Applicant
	result := r.db.WithContext(ctx).
		Where("applied_at >= ? AND applied_at < ?", start, until).
		Order("applied_at").Order("id").
		Find(&applicants)
	if result.Error != nil {
		return nil, result.Error
	}
	return applicants, nil
}
