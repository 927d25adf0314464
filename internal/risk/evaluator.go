// Package risk implements the deterministic, rule-based scoring of student
// signals. There is no model inference here: the score is an additive sum of
// independently evaluated rules, clamped to [0,100].
package risk

import (
	"errors"
	"fmt"
	"math"

	"github.com/thilanga24/dropout-prevention-api/internal/config"
)

// RulesVersion tags persisted snapshots with the rule set that produced them.
const RulesVersion = "additive-v1"

// ErrInvalidSignal marks signal input outside its physical range. Evaluation
// of that row is aborted; other rows are unaffected.
var ErrInvalidSignal = errors.New("invalid signal")

// Input is one signal snapshot to score. Optional signals are pointers;
// absence contributes zero points rather than an error.
type Input struct {
	CurrentGPA        float64
	PreviousGPA       *float64
	AttendancePct     float64
	LMSLastActiveDays int
	FailedModules     int
	MissedAssessments int
	CourseLoadCredits int
	FeeDelayDays      *int
}

// Reason explains one triggered rule.
type Reason struct {
	Rule        string                 `json:"rule"`
	Points      int                    `json:"points"`
	Evidence    map[string]interface{} `json:"evidence"`
	Explanation string                 `json:"explanation"`
}

// Assessment is the scored outcome for one Input.
type Assessment struct {
	Score   int
	Level   string
	Reasons []Reason
}

// Evaluator scores signal snapshots against a fixed rule set.
type Evaluator struct {
	rules config.RuleThresholds
}

// New builds an evaluator bound to the provided thresholds.
func New(rules config.RuleThresholds) *Evaluator {
	return &Evaluator{rules: rules}
}

// Evaluate maps one signal snapshot to a score, level, and reason list.
// Identical input always yields identical output.
func (e *Evaluator) Evaluate(in Input) (Assessment, error) {
	if err := e.validate(in); err != nil {
		return Assessment{}, err
	}

	score := 0
	reasons := make([]Reason, 0, 4)

	if in.AttendancePct < e.rules.AttendanceMinPct {
		score += e.rules.AttendancePoints
		reasons = append(reasons, Reason{
			Rule:        "attendance_below_minimum",
			Points:      e.rules.AttendancePoints,
			Evidence:    map[string]interface{}{"attendance_pct": in.AttendancePct},
			Explanation: fmt.Sprintf("Attendance below %.0f%%.", e.rules.AttendanceMinPct),
		})
	}

	if in.PreviousGPA != nil {
		drop := *in.PreviousGPA - in.CurrentGPA
		if drop > e.rules.GPADropDelta {
			score += e.rules.GPADropPoints
			reasons = append(reasons, Reason{
				Rule:   "gpa_drop",
				Points: e.rules.GPADropPoints,
				Evidence: map[string]interface{}{
					"previous_gpa": *in.PreviousGPA,
					"current_gpa":  in.CurrentGPA,
					"gpa_drop":     math.Round(drop*1000) / 1000,
				},
				Explanation: fmt.Sprintf("GPA dropped by more than %.1f.", e.rules.GPADropDelta),
			})
		}
	}

	if in.LMSLastActiveDays > e.rules.LMSInactiveDays {
		score += e.rules.LMSInactivePoints
		reasons = append(reasons, Reason{
			Rule:        "lms_inactive",
			Points:      e.rules.LMSInactivePoints,
			Evidence:    map[string]interface{}{"lms_last_active_days": in.LMSLastActiveDays},
			Explanation: fmt.Sprintf("No LMS activity for more than %d days.", e.rules.LMSInactiveDays),
		})
	}

	if in.FeeDelayDays != nil && *in.FeeDelayDays > e.rules.FeeDelayDays {
		score += e.rules.FeeDelayPoints
		reasons = append(reasons, Reason{
			Rule:        "fee_delay",
			Points:      e.rules.FeeDelayPoints,
			Evidence:    map[string]interface{}{"fee_delay_days": *in.FeeDelayDays},
			Explanation: fmt.Sprintf("Fee payment delayed beyond %d days.", e.rules.FeeDelayDays),
		})
	}

	switch {
	case in.FailedModules >= e.rules.FailedModulesHighMin:
		score += e.rules.FailedModulesHighPts
		reasons = append(reasons, Reason{
			Rule:        "failed_modules_high",
			Points:      e.rules.FailedModulesHighPts,
			Evidence:    map[string]interface{}{"failed_modules_count": in.FailedModules},
			Explanation: "Two or more failed or repeated modules.",
		})
	case in.FailedModules >= 1:
		score += e.rules.FailedModulesLowPts
		reasons = append(reasons, Reason{
			Rule:        "failed_modules",
			Points:      e.rules.FailedModulesLowPts,
			Evidence:    map[string]interface{}{"failed_modules_count": in.FailedModules},
			Explanation: "At least one failed or repeated module.",
		})
	}

	switch {
	case in.MissedAssessments >= e.rules.MissedAssessHighMin:
		score += e.rules.MissedAssessHighPts
		reasons = append(reasons, Reason{
			Rule:        "missed_assessments_high",
			Points:      e.rules.MissedAssessHighPts,
			Evidence:    map[string]interface{}{"missed_assessments_count": in.MissedAssessments},
			Explanation: "Missed three or more assessments.",
		})
	case in.MissedAssessments >= 1:
		score += e.rules.MissedAssessLowPts
		reasons = append(reasons, Reason{
			Rule:        "missed_assessments",
			Points:      e.rules.MissedAssessLowPts,
			Evidence:    map[string]interface{}{"missed_assessments_count": in.MissedAssessments},
			Explanation: "Missed at least one assessment.",
		})
	}

	if in.CourseLoadCredits >= e.rules.HeavyCourseLoadMin {
		score += e.rules.HeavyCourseLoadPoints
		reasons = append(reasons, Reason{
			Rule:        "heavy_course_load",
			Points:      e.rules.HeavyCourseLoadPoints,
			Evidence:    map[string]interface{}{"course_load_credits": in.CourseLoadCredits},
			Explanation: fmt.Sprintf("High course load (%d+ credits).", e.rules.HeavyCourseLoadMin),
		})
	}

	score = clamp(score)

	return Assessment{
		Score:   score,
		Level:   Level(score),
		Reasons: reasons,
	}, nil
}

// Level maps a clamped score to its risk band.
func Level(score int) string {
	switch {
	case score <= 30:
		return "LOW"
	case score <= 60:
		return "MEDIUM"
	default:
		return "HIGH"
	}
}

func (e *Evaluator) validate(in Input) error {
	if in.AttendancePct < 0 || in.AttendancePct > 100 {
		return fmt.Errorf("%w: attendance_pct %.2f outside [0,100]", ErrInvalidSignal, in.AttendancePct)
	}

	scale := e.rules.GPAScaleMax
	if scale <= 0 {
		scale = 4.0
	}

	if in.CurrentGPA < 0 || in.CurrentGPA > scale {
		return fmt.Errorf("%w: current_gpa %.2f outside [0,%.1f]", ErrInvalidSignal, in.CurrentGPA, scale)
	}

	if in.PreviousGPA != nil && (*in.PreviousGPA < 0 || *in.PreviousGPA > scale) {
		return fmt.Errorf("%w: previous_gpa %.2f outside [0,%.1f]", ErrInvalidSignal, *in.PreviousGPA, scale)
	}

	return nil
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
