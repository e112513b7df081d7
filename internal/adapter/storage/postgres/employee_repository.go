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

type EmployeeRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewEmployeeRepository(db *gorm.DB, log *zap.Logger) ports.EmployeeRepository {
	return &EmployeeRepository{
		db:  db,
		log: log,
	}
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*domain.Employee, error) {
	defer observe(time.Now())

	var e domain.Employee
	result := r.db.WithContext(ctx).First(&e, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("Failed to load employee", zap.String("id", id), zap.Error(result.Error))
		return nil, result.Error
	}
	return &e, nil
}

// FindAll supports "status" and "department" filters.
func (r *EmployeeRepository) FindAll(ctx context.Context, filter map[string]interface{}) ([]domain.Employee, error) {
	defer observe(time.Now())

	var employees []domain.Employee
	query := r.db.WithContext(ctx)
	if status, ok := filter["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if dept, ok := filter["department"]; ok {
		query = query.Where("department = ?", dept)
	}

	result := query.Order("name").Order("id").Find(&employees)
	if result.Error != nil {
		return nil, result.Error
	}
	return employees, nil
}
