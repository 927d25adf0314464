package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/thilanga24/dropout-prevention-api/internal/models"
)

// SignalRepository persists raw signal snapshots. Signals are append-only:
// there is no update path, corrections are new rows.
type SignalRepository interface {
	Append(ctx context.Context, snapshot *models.SignalSnapshot) error
	LatestForStudent(ctx context.Context, studentID uint) (models.SignalSnapshot, error)
	ListLatest(ctx context.Context, limit int) ([]models.SignalSnapshot, error)
	History(ctx context.Context, studentID uint) ([]models.SignalSnapshot, error)
}

type signalRepository struct {
	db *gorm.DB
}

// NewSignalRepository constructs the signal repository.
func NewSignalRepository(db *gorm.DB) SignalRepository {
	return &signalRepository{db: db}
}

func (r *signalRepository) Append(ctx context.Context, snapshot *models.SignalSnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *signalRepository) LatestForStudent(ctx context.Context, studentID uint) (models.SignalSnapshot, error) {
	var snapshot models.SignalSnapshot
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("as_of DESC").Order("id DESC").
		First(&snapshot).Error
	if err != nil {
		return models.SignalSnapshot{}, err
	}

	return snapshot, nil
}

// ListLatest returns the most recent signal row per student, with the
// student record preloaded. This is the batch agent's input set.
func (r *signalRepository) ListLatest(ctx context.Context, limit int) ([]models.SignalSnapshot, error) {
	query := r.db.WithContext(ctx).
		Preload("Student").
		Where("id IN (?)", r.db.Model(&models.SignalSnapshot{}).Select("MAX(id)").Group("student_id")).
		Order("as_of DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var snapshots []models.SignalSnapshot
	if err := query.Find(&snapshots).Error; err != nil {
		return nil, err
	}

	return snapshots, nil
}

func (r *signalRepository) History(ctx context.Context, studentID uint) ([]models.SignalSnapshot, error) {
	var snapshots []models.SignalSnapshot
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("as_of ASC").Order("id ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}

	return snapshots, nil
}
