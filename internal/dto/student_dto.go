package dto

import (
	"time"

	"github.com/thilanga24/dropout-prevention-api/internal/models"
)

// StudentUpsertRequest registers or refreshes a student identity record.
type StudentUpsertRequest struct {
	Code      string `json:"code" validate:"required,max=64"`
	FullName  string `json:"full_name" validate:"max=255"`
	Program   string `json:"program" validate:"max=128"`
	YearLevel *int   `json:"year_level" validate:"omitempty,min=1,max=10"`
}

// StudentResponse is the API projection of a student record.
type StudentResponse struct {
	ID        uint      `json:"id"`
	Code      string    `json:"code"`
	FullName  string    `json:"full_name"`
	Program   string    `json:"program"`
	YearLevel *int      `json:"year_level"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStudentResponse maps the model to its response shape.
func NewStudentResponse(student models.Student) StudentResponse {
	return StudentResponse{
		ID:        student.ID,
		Code:      student.Code,
		FullName:  student.FullName,
		Program:   student.Program,
		YearLevel: student.YearLevel,
		CreatedAt: student.CreatedAt,
		UpdatedAt: student.UpdatedAt,
	}
}
