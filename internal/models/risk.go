package models

import (
	"time"

	"gorm.io/datatypes"
)

// Risk levels derived from the rule score.
const (
	RiskLevelLow    = "LOW"
	RiskLevelMedium = "MEDIUM"
	RiskLevelHigh   = "HIGH"
)

// RiskSnapshot is one scored assessment derived from exactly one
// SignalSnapshot. Rows are append-only; re-scoring appends, never updates.
type RiskSnapshot struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	StudentID    uint           `gorm:"index:idx_risks_student_asof;not null" json:"student_id"`
	AsOf         time.Time      `gorm:"index:idx_risks_student_asof;not null" json:"as_of"`
	Score        int            `gorm:"not null" json:"score"`
	Level        string         `gorm:"size:16;not null" json:"level"`
	Reasons      datatypes.JSON `gorm:"type:json" json:"reasons"`
	RulesVersion string         `gorm:"size:32" json:"rules_version"`
	CreatedAt    time.Time      `json:"created_at"`

	Student Student `gorm:"foreignKey:StudentID" json:"-"`
}
