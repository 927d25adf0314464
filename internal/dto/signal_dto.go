package dto

import (
	"time"

	"github.com/thilanga24/dropout-prevention-api/internal/models"
)

// SignalCreateRequest appends one raw signal snapshot for a student.
// Timestamps default to the ingestion time when omitted.
type SignalCreateRequest struct {
	AsOf              *time.Time `json:"as_of"`
	CurrentGPA        float64    `json:"current_gpa" validate:"min=0"`
	PreviousGPA       *float64   `json:"previous_gpa" validate:"omitempty,min=0"`
	AttendancePct     float64    `json:"attendance_pct" validate:"min=0,max=100"`
	LMSLastActiveDays int        `json:"lms_last_active_days" validate:"min=0"`
	FailedModules     int        `json:"failed_modules_count" validate:"min=0"`
	MissedAssessments int        `json:"missed_assessments_count" validate:"min=0"`
	CourseLoadCredits int        `json:"course_load_credits" validate:"min=0"`
	FeeDelayDays      *int       `json:"fee_delay_days" validate:"omitempty,min=0"`
	Source            string     `json:"source" validate:"max=64"`
}

// SignalResponse is the API projection of a stored signal snapshot.
type SignalResponse struct {
	ID                uint      `json:"id"`
	StudentID         uint      `json:"student_id"`
	AsOf              time.Time `json:"as_of"`
	CurrentGPA        float64   `json:"current_gpa"`
	PreviousGPA       *float64  `json:"previous_gpa"`
	AttendancePct     float64   `json:"attendance_pct"`
	LMSLastActiveDays int       `json:"lms_last_active_days"`
	FailedModules     int       `json:"failed_modules_count"`
	MissedAssessments int       `json:"missed_assessments_count"`
	CourseLoadCredits int       `json:"course_load_credits"`
	FeeDelayDays      *int      `json:"fee_delay_days"`
	Source            string    `json:"source"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewSignalResponse maps the model to its response shape.
func NewSignalResponse(snapshot models.SignalSnapshot) SignalResponse {
	return SignalResponse{
		ID:                snapshot.ID,
		StudentID:         snapshot.StudentID,
		AsOf:              snapshot.AsOf,
		CurrentGPA:        snapshot.CurrentGPA,
		PreviousGPA:       snapshot.PreviousGPA,
		AttendancePct:     snapshot.AttendancePct,
		LMSLastActiveDays: snapshot.LMSLastActiveDays,
		FailedModules:     snapshot.FailedModules,
		MissedAssessments: snapshot.MissedAssessments,
		CourseLoadCredits: snapshot.CourseLoadCredits,
		FeeDelayDays:      snapshot.FeeDelayDays,
		Source:            snapshot.Source,
		CreatedAt:         snapshot.CreatedAt,
	}
}
