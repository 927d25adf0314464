package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/thilanga24/dropout-prevention-api/internal/models"
)

// RiskRepository persists the append-only risk history.
type RiskRepository interface {
	Append(ctx context.Context, snapshot *models.RiskSnapshot) error
	LatestForStudent(ctx context.Context, studentID uint) (models.RiskSnapshot, error)
	ListLatest(ctx context.Context, limit int) ([]models.RiskSnapshot, error)
	History(ctx context.Context, studentID uint) ([]models.RiskSnapshot, error)
}

type riskRepository struct {
	db *gorm.DB
}

// NewRiskRepository constructs the risk snapshot repository.
func NewRiskRepository(db *gorm.DB) RiskRepository {
	return &riskRepository{db: db}
}

func (r *riskRepository) Append(ctx context.Context, snapshot *models.RiskSnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *riskRepository) LatestForStudent(ctx context.Context, studentID uint) (models.RiskSnapshot, error) {
	var snapshot models.RiskSnapshot
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("as_of DESC").Order("id DESC").
		First(&snapshot).Error
	if err != nil {
		return models.RiskSnapshot{}, err
	}

	return snapshot, nil
}

// ListLatest returns the most recent risk row per student ordered by score
// descending, the read surface the overview consumes.
func (r *riskRepository) ListLatest(ctx context.Context, limit int) ([]models.RiskSnapshot, error) {
	query := r.db.WithContext(ctx).
		Preload("Student").
		Where("id IN (?)", r.db.Model(&models.RiskSnapshot{}).Select("MAX(id)").Group("student_id")).
		Order("score DESC").Order("as_of DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var snapshots []models.RiskSnapshot
	if err := query.Find(&snapshots).Error; err != nil {
		return nil, err
	}

	return snapshots, nil
}

func (r *riskRepository) History(ctx context.Context, studentID uint) ([]models.RiskSnapshot, error) {
	var snapshots []models.RiskSnapshot
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("as_of ASC").Order("id ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}

	return snapshots, nil
}
