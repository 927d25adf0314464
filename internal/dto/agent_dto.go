package dto

import "time"

// AgentRunRequest starts a batch scoring run over the latest signals.
type AgentRunRequest struct {
	Limit int `json:"limit" validate:"min=0,max=5000"`
}

// StudentOutcome reports what happened to one student during a batch run.
// Failures are recorded here, never raised to the batch caller.
type StudentOutcome struct {
	StudentID     uint   `json:"student_id"`
	StudentCode   string `json:"student_code"`
	Score         int    `json:"score,omitempty"`
	Level         string `json:"level,omitempty"`
	Recommended   bool   `json:"recommendation_generated"`
	FailureKind   string `json:"failure_kind,omitempty"`
	FailureDetail string `json:"failure_detail,omitempty"`
}

// AgentRunResponse summarises a completed batch run.
type AgentRunResponse struct {
	RunID            string           `json:"run_id"`
	AsOf             time.Time        `json:"as_of"`
	Processed        int              `json:"processed"`
	Scored           int              `json:"scored"`
	Failed           int              `json:"failed"`
	Recommended      int              `json:"recommended"`
	GeneratorSkipped int              `json:"generator_skipped"`
	Outcomes         []StudentOutcome `json:"outcomes"`
}

// TimelineResponse is the full audit history for one student, each series in
// ascending as_of order.
type TimelineResponse struct {
	Student         StudentResponse          `json:"student"`
	Signals         []SignalResponse         `json:"signals"`
	Risks           []RiskResponse           `json:"risks"`
	Recommendations []RecommendationResponse `json:"recommendations"`
	Interventions   []InterventionResponse   `json:"interventions"`
}
