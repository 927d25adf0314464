package models

import "time"

// SignalSnapshot captures the raw observed signals for a student at a point
// in time. Rows are append-only; a corrected signal is a new row with a
// later as_of.
type SignalSnapshot struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	StudentID         uint      `gorm:"index:idx_signals_student_asof;not null" json:"student_id"`
	AsOf              time.Time `gorm:"index:idx_signals_student_asof;not null" json:"as_of"`
	CurrentGPA        float64   `gorm:"not null" json:"current_gpa"`
	PreviousGPA       *float64  `json:"previous_gpa"`
	AttendancePct     float64   `gorm:"not null" json:"attendance_pct"`
	LMSLastActiveDays int       `gorm:"not null" json:"lms_last_active_days"`
	FailedModules     int       `gorm:"not null;default:0" json:"failed_modules_count"`
	MissedAssessments int       `gorm:"not null;default:0" json:"missed_assessments_count"`
	CourseLoadCredits int       `gorm:"not null;default:0" json:"course_load_credits"`
	FeeDelayDays      *int      `json:"fee_delay_days"`
	Source            string    `gorm:"size:64;not null;default:manual_entry" json:"source"`
	CreatedAt         time.Time `json:"created_at"`

	Student Student `gorm:"foreignKey:StudentID" json:"-"`
}
