package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/thilanga24/dropout-prevention-api/internal/models"
)

// RecommendationRepository persists the append-only recommendation ledger.
type RecommendationRepository interface {
	Append(ctx context.Context, recommendation *models.Recommendation) error
	History(ctx context.Context, studentID uint) ([]models.Recommendation, error)
}

type recommendationRepository struct {
	db *gorm.DB
}

// NewRecommendationRepository constructs the recommendation repository.
func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) Append(ctx context.Context, recommendation *models.Recommendation) error {
	return r.db.WithContext(ctx).Create(recommendation).Error
}

func (r *recommendationRepository) History(ctx context.Context, studentID uint) ([]models.Recommendation, error) {
	var recommendations []models.Recommendation
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("as_of ASC").Order("id ASC").
		Find(&recommendations).Error
	if err != nil {
		return nil, err
	}

	return recommendations, nil
}
