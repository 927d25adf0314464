package dto

import (
	"encoding/json"
	"time"

	"github.com/thilanga24/dropout-prevention-api/internal/models"
	"github.com/thilanga24/dropout-prevention-api/internal/risk"
	"github.com/thilanga24/dropout-prevention-api/pkg/advisor"
)

// RiskResponse is the API projection of one stored risk snapshot with its
// reason list decoded.
type RiskResponse struct {
	ID           uint          `json:"id"`
	StudentID    uint          `json:"student_id"`
	AsOf         time.Time     `json:"as_of"`
	Score        int           `json:"score"`
	Level        string        `json:"level"`
	Reasons      []risk.Reason `json:"reasons"`
	RulesVersion string        `json:"rules_version"`
	CreatedAt    time.Time     `json:"created_at"`
}

// NewRiskResponse maps the model to its response shape.
func NewRiskResponse(snapshot models.RiskSnapshot) RiskResponse {
	var reasons []risk.Reason
	if len(snapshot.Reasons) > 0 {
		_ = json.Unmarshal(snapshot.Reasons, &reasons)
	}

	return RiskResponse{
		ID:           snapshot.ID,
		StudentID:    snapshot.StudentID,
		AsOf:         snapshot.AsOf,
		Score:        snapshot.Score,
		Level:        snapshot.Level,
		Reasons:      reasons,
		RulesVersion: snapshot.RulesVersion,
		CreatedAt:    snapshot.CreatedAt,
	}
}

// RecommendationResponse is the API projection of one stored recommendation.
type RecommendationResponse struct {
	ID          uint             `json:"id"`
	StudentID   uint             `json:"student_id"`
	AsOf        time.Time        `json:"as_of"`
	RiskScore   int              `json:"risk_score"`
	RiskLevel   string           `json:"risk_level"`
	Actions     []advisor.Action `json:"recommended_actions"`
	Priority    string           `json:"priority"`
	Explanation string           `json:"explanation"`
	GeneratedBy string           `json:"generated_by"`
	CreatedAt   time.Time        `json:"created_at"`
}

// NewRecommendationResponse maps the model to its response shape.
func NewRecommendationResponse(recommendation models.Recommendation) RecommendationResponse {
	var actions []advisor.Action
	if len(recommendation.Actions) > 0 {
		_ = json.Unmarshal(recommendation.Actions, &actions)
	}

	return RecommendationResponse{
		ID:          recommendation.ID,
		StudentID:   recommendation.StudentID,
		AsOf:        recommendation.AsOf,
		RiskScore:   recommendation.RiskScore,
		RiskLevel:   recommendation.RiskLevel,
		Actions:     actions,
		Priority:    recommendation.Priority,
		Explanation: recommendation.Explanation,
		GeneratedBy: recommendation.GeneratedBy,
		CreatedAt:   recommendation.CreatedAt,
	}
}

// RiskOverviewEntry is one row of the latest-risk-per-student overview.
type RiskOverviewEntry struct {
	StudentID   uint      `json:"student_id"`
	StudentCode string    `json:"student_code"`
	FullName    string    `json:"full_name"`
	Program     string    `json:"program"`
	AsOf        time.Time `json:"as_of"`
	Score       int       `json:"score"`
	Level       string    `json:"level"`
}

// RiskOverviewResponse is the dashboard-facing read surface: the most recent
// risk per student, highest scores first.
type RiskOverviewResponse struct {
	Entries     []RiskOverviewEntry `json:"entries"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// NewRiskOverviewEntry maps a latest snapshot (with preloaded student) to an
// overview row.
func NewRiskOverviewEntry(snapshot models.RiskSnapshot) RiskOverviewEntry {
	return RiskOverviewEntry{
		StudentID:   snapshot.StudentID,
		StudentCode: snapshot.Student.Code,
		FullName:    snapshot.Student.FullName,
		Program:     snapshot.Student.Program,
		AsOf:        snapshot.AsOf,
		Score:       snapshot.Score,
		Level:       snapshot.Level,
	}
}
