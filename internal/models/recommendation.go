package models

import (
	"time"

	"gorm.io/datatypes"
)

// Recommendation is an advisory action list tied to the risk snapshot it was
// generated from. Rows are append-only.
type Recommendation struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	StudentID   uint           `gorm:"index:idx_recs_student_asof;not null" json:"student_id"`
	AsOf        time.Time      `gorm:"index:idx_recs_student_asof;not null" json:"as_of"`
	RiskScore   int            `gorm:"not null" json:"risk_score"`
	RiskLevel   string         `gorm:"size:16;not null" json:"risk_level"`
	Actions     datatypes.JSON `gorm:"type:json" json:"recommended_actions"`
	Priority    string         `gorm:"size:16;not null" json:"priority"`
	Explanation string         `gorm:"type:text" json:"explanation"`
	GeneratedBy string         `gorm:"size:64" json:"generated_by"`
	CreatedAt   time.Time      `json:"created_at"`

	Student Student `gorm:"foreignKey:StudentID" json:"-"`
}
