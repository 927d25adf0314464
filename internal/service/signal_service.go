package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/thilanga24/dropout-prevention-api/internal/config"
	"github.com/thilanga24/dropout-prevention-api/internal/dto"
	"github.com/thilanga24/dropout-prevention-api/internal/models"
	"github.com/thilanga24/dropout-prevention-api/internal/repository"
	"github.com/thilanga24/dropout-prevention-api/internal/risk"
)

// SignalService handles student registration and signal ingestion.
type SignalService interface {
	UpsertStudent(ctx context.Context, req dto.StudentUpsertRequest) (dto.StudentResponse, error)
	GetStudent(ctx context.Context, code string) (dto.StudentResponse, error)
	Ingest(ctx context.Context, studentCode string, req dto.SignalCreateRequest) (dto.SignalResponse, error)
	Latest(ctx context.Context, studentCode string) (dto.SignalResponse, error)
}

type signalService struct {
	students  repository.StudentRepository
	signals   repository.SignalRepository
	rules     config.RuleThresholds
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewSignalService constructs the signal ingestion service.
func NewSignalService(students repository.StudentRepository, signals repository.SignalRepository, rules config.RuleThresholds, validate *validator.Validate, logger zerolog.Logger) SignalService {
	return &signalService{
		students:  students,
		signals:   signals,
		rules:     rules,
		validator: validate,
		logger:    logger.With().Str("component", "signal_service").Logger(),
		now:       time.Now,
	}
}

func (s *signalService) UpsertStudent(ctx context.Context, req dto.StudentUpsertRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.StudentResponse{}, err
	}

	student := models.Student{
		Code:      strings.TrimSpace(req.Code),
		FullName:  strings.TrimSpace(req.FullName),
		Program:   strings.TrimSpace(req.Program),
		YearLevel: req.YearLevel,
	}

	if err := s.students.Upsert(ctx, &student); err != nil {
		s.logger.Error().Err(err).Str("student_code", student.Code).Msg("failed to upsert student")
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student), nil
}

func (s *signalService) GetStudent(ctx context.Context, code string) (dto.StudentResponse, error) {
	student, err := s.students.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student), nil
}

// Ingest appends a new signal row for the student. Signals are never updated
// in place; a correction is a new row with a later as_of.
func (s *signalService) Ingest(ctx context.Context, studentCode string, req dto.SignalCreateRequest) (dto.SignalResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.SignalResponse{}, err
	}

	if err := s.checkRanges(req); err != nil {
		return dto.SignalResponse{}, err
	}

	student, err := s.students.GetByCode(ctx, strings.TrimSpace(studentCode))
	if err != nil {
		return dto.SignalResponse{}, err
	}

	asOf := s.now().UTC()
	if req.AsOf != nil {
		asOf = req.AsOf.UTC()
	}

	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = "manual_entry"
	}

	snapshot := models.SignalSnapshot{
		StudentID:         student.ID,
		AsOf:              asOf,
		CurrentGPA:        req.CurrentGPA,
		PreviousGPA:       req.PreviousGPA,
		AttendancePct:     req.AttendancePct,
		LMSLastActiveDays: req.LMSLastActiveDays,
		FailedModules:     req.FailedModules,
		MissedAssessments: req.MissedAssessments,
		CourseLoadCredits: req.CourseLoadCredits,
		FeeDelayDays:      req.FeeDelayDays,
		Source:            source,
	}

	if err := s.signals.Append(ctx, &snapshot); err != nil {
		s.logger.Error().Err(err).Str("student_code", student.Code).Msg("failed to persist signal snapshot")
		return dto.SignalResponse{}, err
	}

	return dto.NewSignalResponse(snapshot), nil
}

func (s *signalService) Latest(ctx context.Context, studentCode string) (dto.SignalResponse, error) {
	student, err := s.students.GetByCode(ctx, strings.TrimSpace(studentCode))
	if err != nil {
		return dto.SignalResponse{}, err
	}

	snapshot, err := s.signals.LatestForStudent(ctx, student.ID)
	if err != nil {
		return dto.SignalResponse{}, err
	}

	return dto.NewSignalResponse(snapshot), nil
}

// checkRanges rejects physically impossible values before they reach the
// store, mirroring the evaluator's own input validation.
func (s *signalService) checkRanges(req dto.SignalCreateRequest) error {
	scale := s.rules.GPAScaleMax
	if scale <= 0 {
		scale = 4.0
	}

	if req.CurrentGPA > scale {
		return fmt.Errorf("%w: current_gpa %.2f outside [0,%.1f]", risk.ErrInvalidSignal, req.CurrentGPA, scale)
	}

	if req.PreviousGPA != nil && *req.PreviousGPA > scale {
		return fmt.Errorf("%w: previous_gpa %.2f outside [0,%.1f]", risk.ErrInvalidSignal, *req.PreviousGPA, scale)
	}

	return nil
}
