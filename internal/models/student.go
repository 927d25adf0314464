package models

import "time"

// Student is the identity record every signal, risk, and intervention row
// references.
type Student struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"size:64;uniqueIndex;not null" json:"code"`
	FullName  string    `gorm:"size:255" json:"full_name"`
	Program   string    `gorm:"size:128" json:"program"`
	YearLevel *int      `json:"year_level"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
