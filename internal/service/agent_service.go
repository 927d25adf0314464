package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/thilanga24/dropout-prevention-api/internal/dto"
	"github.com/thilanga24/dropout-prevention-api/internal/models"
	"github.com/thilanga24/dropout-prevention-api/internal/observability"
	"github.com/thilanga24/dropout-prevention-api/internal/repository"
	"github.com/thilanga24/dropout-prevention-api/internal/risk"
	"github.com/thilanga24/dropout-prevention-api/pkg/advisor"
)

// Failure kinds reported per student in a batch run.
const (
	failureInvalidSignal = "invalid_signal"
	failurePersistence   = "persistence_error"
)

// AgentService runs the batch scoring loop: evaluate each student's latest
// signals, persist a risk snapshot, and optionally request a recommendation.
type AgentService interface {
	RunBatch(ctx context.Context, req dto.AgentRunRequest) (dto.AgentRunResponse, error)
}

type agentService struct {
	signals          repository.SignalRepository
	risks            repository.RiskRepository
	recommendations  repository.RecommendationRepository
	evaluator        *risk.Evaluator
	generator        advisor.Generator
	workers          int
	generatorTimeout time.Duration
	logger           zerolog.Logger
	now              func() time.Time
}

// NewAgentService constructs the batch agent. A nil generator disables the
// recommendation step entirely.
func NewAgentService(
	signals repository.SignalRepository,
	risks repository.RiskRepository,
	recommendations repository.RecommendationRepository,
	evaluator *risk.Evaluator,
	generator advisor.Generator,
	workers int,
	generatorTimeout time.Duration,
	logger zerolog.Logger,
) AgentService {
	if workers <= 0 {
		workers = 1
	}

	return &agentService{
		signals:          signals,
		risks:            risks,
		recommendations:  recommendations,
		evaluator:        evaluator,
		generator:        generator,
		workers:          workers,
		generatorTimeout: generatorTimeout,
		logger:           logger.With().Str("component", "agent_service").Logger(),
		now:              time.Now,
	}
}

// RunBatch scores every student with a latest signal snapshot. Students are
// processed by a worker pool; one student's failure never aborts the batch.
func (s *agentService) RunBatch(ctx context.Context, req dto.AgentRunRequest) (dto.AgentRunResponse, error) {
	start := s.now()
	asOf := start.UTC()
	runID := uuid.NewString()

	snapshots, err := s.signals.ListLatest(ctx, req.Limit)
	if err != nil {
		return dto.AgentRunResponse{}, err
	}

	logger := s.logger.With().Str("run_id", runID).Logger()
	logger.Info().Int("students", len(snapshots)).Msg("starting batch run")

	jobs := make(chan models.SignalSnapshot)
	results := make(chan dto.StudentOutcome)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for snapshot := range jobs {
				results <- s.processStudent(ctx, snapshot, asOf, logger)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, snapshot := range snapshots {
			select {
			case jobs <- snapshot:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	response := dto.AgentRunResponse{RunID: runID, AsOf: asOf}
	for outcome := range results {
		response.Processed++
		switch {
		case outcome.FailureKind != "":
			response.Failed++
			observability.BatchStudents().WithLabelValues(outcome.FailureKind).Inc()
		default:
			response.Scored++
			observability.BatchStudents().WithLabelValues("scored").Inc()
		}
		if outcome.Recommended {
			response.Recommended++
		} else if outcome.FailureKind == "" {
			response.GeneratorSkipped++
		}
		response.Outcomes = append(response.Outcomes, outcome)
	}

	// Worker completion order is nondeterministic; report stably.
	sort.Slice(response.Outcomes, func(i, j int) bool {
		return response.Outcomes[i].StudentID < response.Outcomes[j].StudentID
	})

	observability.BatchDuration().Observe(time.Since(start).Seconds())
	logger.Info().
		Int("processed", response.Processed).
		Int("scored", response.Scored).
		Int("failed", response.Failed).
		Int("recommended", response.Recommended).
		Msg("batch run finished")

	return response, nil
}

func (s *agentService) processStudent(ctx context.Context, snapshot models.SignalSnapshot, asOf time.Time, logger zerolog.Logger) dto.StudentOutcome {
	outcome := dto.StudentOutcome{
		StudentID:   snapshot.StudentID,
		StudentCode: snapshot.Student.Code,
	}

	assessment, err := s.evaluator.Evaluate(risk.Input{
		CurrentGPA:        snapshot.CurrentGPA,
		PreviousGPA:       snapshot.PreviousGPA,
		AttendancePct:     snapshot.AttendancePct,
		LMSLastActiveDays: snapshot.LMSLastActiveDays,
		FailedModules:     snapshot.FailedModules,
		MissedAssessments: snapshot.MissedAssessments,
		CourseLoadCredits: snapshot.CourseLoadCredits,
		FeeDelayDays:      snapshot.FeeDelayDays,
	})
	if err != nil {
		kind := failurePersistence
		if errors.Is(err, risk.ErrInvalidSignal) {
			kind = failureInvalidSignal
		}
		logger.Warn().Err(err).Uint("student_id", snapshot.StudentID).Msg("evaluation failed")
		outcome.FailureKind = kind
		outcome.FailureDetail = err.Error()
		return outcome
	}

	reasons, err := json.Marshal(assessment.Reasons)
	if err != nil {
		outcome.FailureKind = failurePersistence
		outcome.FailureDetail = err.Error()
		return outcome
	}

	riskRow := models.RiskSnapshot{
		StudentID:    snapshot.StudentID,
		AsOf:         asOf,
		Score:        assessment.Score,
		Level:        assessment.Level,
		Reasons:      datatypes.JSON(reasons),
		RulesVersion: risk.RulesVersion,
	}

	if err := s.risks.Append(ctx, &riskRow); err != nil {
		logger.Error().Err(err).Uint("student_id", snapshot.StudentID).Msg("failed to persist risk snapshot")
		outcome.FailureKind = failurePersistence
		outcome.FailureDetail = err.Error()
		return outcome
	}

	outcome.Score = assessment.Score
	outcome.Level = assessment.Level

	// A generator failure skips the recommendation only; the risk snapshot
	// above is already durable.
	result, ok := s.generate(ctx, snapshot, assessment, reasons, logger)
	if !ok {
		return outcome
	}

	actions, err := json.Marshal(result.Actions)
	if err != nil {
		logger.Warn().Err(err).Uint("student_id", snapshot.StudentID).Msg("failed to encode recommendation actions")
		return outcome
	}

	recommendation := models.Recommendation{
		StudentID:   snapshot.StudentID,
		AsOf:        asOf,
		RiskScore:   assessment.Score,
		RiskLevel:   assessment.Level,
		Actions:     datatypes.JSON(actions),
		Priority:    result.Priority,
		Explanation: result.Explanation,
		GeneratedBy: result.Model,
	}

	if err := s.recommendations.Append(ctx, &recommendation); err != nil {
		logger.Error().Err(err).Uint("student_id", snapshot.StudentID).Msg("failed to persist recommendation")
		return outcome
	}

	outcome.Recommended = true
	return outcome
}

func (s *agentService) generate(ctx context.Context, snapshot models.SignalSnapshot, assessment risk.Assessment, reasons []byte, logger zerolog.Logger) (advisor.Result, bool) {
	if s.generator == nil {
		observability.GeneratorSkipped().Inc()
		return advisor.Result{}, false
	}

	input := advisor.Input{
		StudentCode: snapshot.Student.Code,
		FullName:    snapshot.Student.FullName,
		Program:     snapshot.Student.Program,
		YearLevel:   snapshot.Student.YearLevel,
		Signals: map[string]interface{}{
			"current_gpa":              snapshot.CurrentGPA,
			"previous_gpa":             snapshot.PreviousGPA,
			"attendance_pct":           snapshot.AttendancePct,
			"lms_last_active_days":     snapshot.LMSLastActiveDays,
			"failed_modules_count":     snapshot.FailedModules,
			"missed_assessments_count": snapshot.MissedAssessments,
			"course_load_credits":      snapshot.CourseLoadCredits,
			"fee_delay_days":           snapshot.FeeDelayDays,
		},
		RiskScore:   assessment.Score,
		RiskLevel:   assessment.Level,
		RiskReasons: reasons,
	}

	generateCtx := ctx
	if s.generatorTimeout > 0 {
		var cancel context.CancelFunc
		generateCtx, cancel = context.WithTimeout(ctx, s.generatorTimeout)
		defer cancel()
	}

	result, err := s.generator.Generate(generateCtx, input)
	if err != nil {
		observability.GeneratorSkipped().Inc()
		logger.Warn().Err(err).Uint("student_id", snapshot.StudentID).Msg("recommendation skipped")
		return advisor.Result{}, false
	}

	return result, true
}
