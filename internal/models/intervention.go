package models

import "time"

// Intervention workflow states.
const (
	InterventionStatusProposed   = "proposed"
	InterventionStatusInProgress = "in_progress"
	InterventionStatusDismissed  = "dismissed"
	InterventionStatusCompleted  = "completed"
)

// Intervention tracks a human-initiated follow-up action. It is the only
// mutable entity: status, outcome, and notes may be updated in place.
type Intervention struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"index:idx_interventions_student_asof;not null" json:"student_id"`
	AsOf      time.Time `gorm:"index:idx_interventions_student_asof;not null" json:"as_of"`
	Kind      string    `gorm:"size:128;not null" json:"intervention_type"`
	Notes     string    `gorm:"type:text" json:"notes"`
	Status    string    `gorm:"size:32;not null;default:proposed" json:"status"`
	Outcome   string    `gorm:"type:text" json:"outcome"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Student Student `gorm:"foreignKey:StudentID" json:"-"`
}

// CanTransition reports whether an intervention may move from its current
// status to the target status.
func (i Intervention) CanTransition(target string) bool {
	switch i.Status {
	case InterventionStatusProposed:
		return target == InterventionStatusInProgress || target == InterventionStatusDismissed
	case InterventionStatusInProgress, InterventionStatusDismissed:
		return target == InterventionStatusCompleted
	default:
		return false
	}
}
