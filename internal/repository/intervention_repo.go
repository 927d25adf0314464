package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/thilanga24/dropout-prevention-api/internal/models"
)

// InterventionUpdate carries the only fields an intervention row may change
// after creation.
type InterventionUpdate struct {
	Status  string
	Outcome *string
	Notes   *string
}

// InterventionRepository persists human follow-up records.
type InterventionRepository interface {
	Create(ctx context.Context, intervention *models.Intervention) error
	GetByID(ctx context.Context, id uint) (models.Intervention, error)
	Update(ctx context.Context, id uint, update InterventionUpdate) (models.Intervention, error)
	History(ctx context.Context, studentID uint) ([]models.Intervention, error)
}

type interventionRepository struct {
	db *gorm.DB
}

// NewInterventionRepository constructs the intervention repository.
func NewInterventionRepository(db *gorm.DB) InterventionRepository {
	return &interventionRepository{db: db}
}

func (r *interventionRepository) Create(ctx context.Context, intervention *models.Intervention) error {
	return r.db.WithContext(ctx).Create(intervention).Error
}

func (r *interventionRepository) GetByID(ctx context.Context, id uint) (models.Intervention, error) {
	var intervention models.Intervention
	if err := r.db.WithContext(ctx).First(&intervention, id).Error; err != nil {
		return models.Intervention{}, err
	}

	return intervention, nil
}

// Update mutates status, outcome, and notes in place inside one transaction.
// All other columns stay frozen at creation.
func (r *interventionRepository) Update(ctx context.Context, id uint, update InterventionUpdate) (models.Intervention, error) {
	columns := map[string]interface{}{"status": update.Status}
	if update.Outcome != nil {
		columns["outcome"] = *update.Outcome
	}
	if update.Notes != nil {
		columns["notes"] = *update.Notes
	}

	var intervention models.Intervention
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&intervention, id).Error; err != nil {
			return err
		}

		if err := tx.Model(&intervention).Updates(columns).Error; err != nil {
			return err
		}

		return tx.First(&intervention, id).Error
	})
	if err != nil {
		return models.Intervention{}, err
	}

	return intervention, nil
}

func (r *interventionRepository) History(ctx context.Context, studentID uint) ([]models.Intervention, error) {
	var interventions []models.Intervention
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("as_of ASC").Order("id ASC").
		Find(&interventions).Error
	if err != nil {
		return nil, err
	}

	return interventions, nil
}
