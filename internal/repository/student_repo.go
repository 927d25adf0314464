package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thilanga24/dropout-prevention-api/internal/models"
)

// StudentRepository provides access to student identity records.
type StudentRepository interface {
	Upsert(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (models.Student, error)
	GetByCode(ctx context.Context, code string) (models.Student, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

// Upsert inserts the student or refreshes its profile fields. Blank incoming
// values never clobber existing ones.
func (r *studentRepository) Upsert(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "code"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"full_name":  gorm.Expr("COALESCE(NULLIF(excluded.full_name, ''), students.full_name)"),
			"program":    gorm.Expr("COALESCE(NULLIF(excluded.program, ''), students.program)"),
			"year_level": gorm.Expr("COALESCE(excluded.year_level, students.year_level)"),
		}),
	}).Create(student).Error; err != nil {
		return err
	}

	// OnConflict updates do not refresh the in-memory row id.
	return r.db.WithContext(ctx).Where("code = ?", student.Code).First(student).Error
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) GetByCode(ctx context.Context, code string) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&student).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}
