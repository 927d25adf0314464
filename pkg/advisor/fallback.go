package advisor

import "context"

// FallbackGenerator produces deterministic level-based recommendations when
// no LLM is configured or the configured one is unavailable. Its output is
// intentionally conservative and never punitive.
type FallbackGenerator struct{}

// NewFallbackGenerator constructs the deterministic generator.
func NewFallbackGenerator() *FallbackGenerator {
	return &FallbackGenerator{}
}

// Generate returns a fixed recommendation set for the student's risk level.
func (f *FallbackGenerator) Generate(_ context.Context, input Input) (Result, error) {
	level := input.RiskLevel
	if level == "" {
		level = "LOW"
	}

	switch level {
	case "HIGH":
		return Result{
			Priority: "HIGH",
			Actions: []Action{
				{
					Type:      "Schedule advisor check-in within 48 hours",
					Owner:     "advisor",
					Rationale: "High rule-based risk score; human review recommended soon.",
				},
				{
					Type:      "Offer study plan and tutoring referral",
					Owner:     "advisor",
					Rationale: "Support academic recovery without punishment.",
				},
				{
					Type:      "Review academic plan (failed modules, assessments, load)",
					Owner:     "advisor",
					Rationale: "Target practical academic barriers indicated by the signals.",
				},
			},
			Explanation: "Deterministic fallback recommendations based on risk level.",
			Model:       "fallback",
		}, nil
	case "MEDIUM":
		return Result{
			Priority: "MEDIUM",
			Actions: []Action{
				{
					Type:      "Advisor outreach email and optional meeting",
					Owner:     "advisor",
					Rationale: "Moderate risk; early support can prevent escalation.",
				},
				{
					Type:      "Share time-management and study resources",
					Owner:     "student",
					Rationale: "Encourage self-directed improvements.",
				},
			},
			Explanation: "Deterministic fallback recommendations based on risk level.",
			Model:       "fallback",
		}, nil
	default:
		return Result{
			Priority: "LOW",
			Actions: []Action{
				{
					Type:      "Send positive check-in and resources",
					Owner:     "advisor",
					Rationale: "Low risk; keep supportive contact.",
				},
			},
			Explanation: "Deterministic fallback recommendations based on risk level.",
			Model:       "fallback",
		}, nil
	}
}
