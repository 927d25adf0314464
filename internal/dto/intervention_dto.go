package dto

import (
	"time"

	"github.com/thilanga24/dropout-prevention-api/internal/models"
)

// InterventionCreateRequest records a new human follow-up action.
type InterventionCreateRequest struct {
	AsOf  *time.Time `json:"as_of"`
	Kind  string     `json:"intervention_type" validate:"required,max=128"`
	Notes string     `json:"notes"`
}

// InterventionUpdateRequest mutates an intervention's workflow state. Only
// status, outcome, and notes may change after creation.
type InterventionUpdateRequest struct {
	Status  string  `json:"status" validate:"required,oneof=in_progress dismissed completed"`
	Outcome *string `json:"outcome"`
	Notes   *string `json:"notes"`
}

// InterventionResponse is the API projection of an intervention record.
type InterventionResponse struct {
	ID        uint      `json:"id"`
	StudentID uint      `json:"student_id"`
	AsOf      time.Time `json:"as_of"`
	Kind      string    `json:"intervention_type"`
	Notes     string    `json:"notes"`
	Status    string    `json:"status"`
	Outcome   string    `json:"outcome"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewInterventionResponse maps the model to its response shape.
func NewInterventionResponse(intervention models.Intervention) InterventionResponse {
	return InterventionResponse{
		ID:        intervention.ID,
		StudentID: intervention.StudentID,
		AsOf:      intervention.AsOf,
		Kind:      intervention.Kind,
		Notes:     intervention.Notes,
		Status:    intervention.Status,
		Outcome:   intervention.Outcome,
		CreatedAt: intervention.CreatedAt,
		UpdatedAt: intervention.UpdatedAt,
	}
}
