package risk

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thilanga24/dropout-prevention-api/internal/config"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestEvaluateHighRiskExample(t *testing.T) {
	evaluator := New(config.DefaultRuleThresholds())

	assessment, err := evaluator.Evaluate(Input{
		CurrentGPA:        2.8,
		PreviousGPA:       floatPtr(3.4),
		AttendancePct:     55,
		LMSLastActiveDays: 20,
	})
	require.NoError(t, err)
	require.Equal(t, 75, assessment.Score)
	require.Equal(t, "HIGH", assessment.Level)
	require.Len(t, assessment.Reasons, 3)
	require.Equal(t, "attendance_below_minimum", assessment.Reasons[0].Rule)
	require.Equal(t, "gpa_drop", assessment.Reasons[1].Rule)
	require.Equal(t, "lms_inactive", assessment.Reasons[2].Rule)
}

func TestEvaluateNoTriggersIsLow(t *testing.T) {
	evaluator := New(config.DefaultRuleThresholds())

	assessment, err := evaluator.Evaluate(Input{
		CurrentGPA:        3.0,
		PreviousGPA:       floatPtr(3.0),
		AttendancePct:     90,
		LMSLastActiveDays: 5,
	})
	require.NoError(t, err)
	require.Equal(t, 0, assessment.Score)
	require.Equal(t, "LOW", assessment.Level)
	require.Empty(t, assessment.Reasons)
}

func TestEvaluateMissingPreviousGPAIsNotAnError(t *testing.T) {
	evaluator := New(config.DefaultRuleThresholds())

	assessment, err := evaluator.Evaluate(Input{
		CurrentGPA:        1.0,
		AttendancePct:     95,
		LMSLastActiveDays: 0,
	})
	require.NoError(t, err)
	require.Equal(t, 0, assessment.Score)
}

func TestEvaluateFeeDelayRule(t *testing.T) {
	evaluator := New(config.DefaultRuleThresholds())

	assessment, err := evaluator.Evaluate(Input{
		CurrentGPA:        3.2,
		AttendancePct:     80,
		LMSLastActiveDays: 2,
		FeeDelayDays:      intPtr(45),
	})
	require.NoError(t, err)
	require.Equal(t, 25, assessment.Score)
	require.Equal(t, "LOW", assessment.Level)
	require.Equal(t, "fee_delay", assessment.Reasons[0].Rule)
}

func TestEvaluateTieredRules(t *testing.T) {
	evaluator := New(config.DefaultRuleThresholds())

	assessment, err := evaluator.Evaluate(Input{
		CurrentGPA:        2.0,
		AttendancePct:     70,
		LMSLastActiveDays: 3,
		FailedModules:     1,
		MissedAssessments: 3,
		CourseLoadCredits: 21,
	})
	require.NoError(t, err)
	// failed_modules(15) + missed_assessments_high(20) + heavy_course_load(10)
	require.Equal(t, 45, assessment.Score)
	require.Equal(t, "MEDIUM", assessment.Level)
}

func TestEvaluateInvalidSignals(t *testing.T) {
	evaluator := New(config.DefaultRuleThresholds())

	cases := []Input{
		{CurrentGPA: 2.0, AttendancePct: 101, LMSLastActiveDays: 0},
		{CurrentGPA: 2.0, AttendancePct: -1, LMSLastActiveDays: 0},
		{CurrentGPA: 4.5, AttendancePct: 80, LMSLastActiveDays: 0},
		{CurrentGPA: -0.1, AttendancePct: 80, LMSLastActiveDays: 0},
		{CurrentGPA: 2.0, PreviousGPA: floatPtr(9.9), AttendancePct: 80},
	}

	for _, input := range cases {
		_, err := evaluator.Evaluate(input)
		require.ErrorIs(t, err, ErrInvalidSignal)
	}
}

func TestLevelBands(t *testing.T) {
	require.Equal(t, "LOW", Level(0))
	require.Equal(t, "LOW", Level(30))
	require.Equal(t, "MEDIUM", Level(31))
	require.Equal(t, "MEDIUM", Level(60))
	require.Equal(t, "HIGH", Level(61))
	require.Equal(t, "HIGH", Level(100))
}

// Score must equal the sum of triggered rule points clamped to [0,100], for
// any valid input.
func TestEvaluateScoreIsSumOfTriggeredPoints(t *testing.T) {
	rules := config.DefaultRuleThresholds()
	evaluator := New(rules)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		input := Input{
			CurrentGPA:        rng.Float64() * rules.GPAScaleMax,
			AttendancePct:     rng.Float64() * 100,
			LMSLastActiveDays: rng.Intn(60),
			FailedModules:     rng.Intn(5),
			MissedAssessments: rng.Intn(6),
			CourseLoadCredits: rng.Intn(30),
		}
		if rng.Intn(2) == 0 {
			input.PreviousGPA = floatPtr(rng.Float64() * rules.GPAScaleMax)
		}
		if rng.Intn(2) == 0 {
			input.FeeDelayDays = intPtr(rng.Intn(90))
		}

		assessment, err := evaluator.Evaluate(input)
		require.NoError(t, err)

		sum := 0
		for _, reason := range assessment.Reasons {
			sum += reason.Points
		}
		if sum > 100 {
			sum = 100
		}
		require.Equal(t, sum, assessment.Score)
		require.GreaterOrEqual(t, assessment.Score, 0)
		require.LessOrEqual(t, assessment.Score, 100)
		require.Equal(t, Level(assessment.Score), assessment.Level)

		// Pure function: a second evaluation is identical.
		again, err := evaluator.Evaluate(input)
		require.NoError(t, err)
		require.Equal(t, assessment, again)
	}
}
