package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/thilanga24/dropout-prevention-api/internal/dto"
	"github.com/thilanga24/dropout-prevention-api/internal/models"
	"github.com/thilanga24/dropout-prevention-api/internal/repository"
)

// ErrInvalidTransition rejects a status change the workflow does not allow.
var ErrInvalidTransition = errors.New("invalid intervention status transition")

// InterventionService manages the human follow-up workflow.
type InterventionService interface {
	Create(ctx context.Context, studentCode string, req dto.InterventionCreateRequest) (dto.InterventionResponse, error)
	Update(ctx context.Context, id uint, req dto.InterventionUpdateRequest) (dto.InterventionResponse, error)
}

type interventionService struct {
	students      repository.StudentRepository
	interventions repository.InterventionRepository
	validator     *validator.Validate
	logger        zerolog.Logger
	now           func() time.Time
}

// NewInterventionService constructs the intervention workflow service.
func NewInterventionService(students repository.StudentRepository, interventions repository.InterventionRepository, validate *validator.Validate, logger zerolog.Logger) InterventionService {
	return &interventionService{
		students:      students,
		interventions: interventions,
		validator:     validate,
		logger:        logger.With().Str("component", "intervention_service").Logger(),
		now:           time.Now,
	}
}

func (s *interventionService) Create(ctx context.Context, studentCode string, req dto.InterventionCreateRequest) (dto.InterventionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.InterventionResponse{}, err
	}

	student, err := s.students.GetByCode(ctx, strings.TrimSpace(studentCode))
	if err != nil {
		return dto.InterventionResponse{}, err
	}

	asOf := s.now().UTC()
	if req.AsOf != nil {
		asOf = req.AsOf.UTC()
	}

	intervention := models.Intervention{
		StudentID: student.ID,
		AsOf:      asOf,
		Kind:      strings.TrimSpace(req.Kind),
		Notes:     req.Notes,
		Status:    models.InterventionStatusProposed,
	}

	if err := s.interventions.Create(ctx, &intervention); err != nil {
		s.logger.Error().Err(err).Str("student_code", student.Code).Msg("failed to create intervention")
		return dto.InterventionResponse{}, err
	}

	return dto.NewInterventionResponse(intervention), nil
}

// Update advances the workflow. Allowed transitions:
// proposed -> in_progress | dismissed, then either -> completed.
func (s *interventionService) Update(ctx context.Context, id uint, req dto.InterventionUpdateRequest) (dto.InterventionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.InterventionResponse{}, err
	}

	current, err := s.interventions.GetByID(ctx, id)
	if err != nil {
		return dto.InterventionResponse{}, err
	}

	target := strings.ToLower(strings.TrimSpace(req.Status))
	if !current.CanTransition(target) {
		return dto.InterventionResponse{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, target)
	}

	updated, err := s.interventions.Update(ctx, id, repository.InterventionUpdate{
		Status:  target,
		Outcome: req.Outcome,
		Notes:   req.Notes,
	})
	if err != nil {
		s.logger.Error().Err(err).Uint("intervention_id", id).Msg("failed to update intervention")
		return dto.InterventionResponse{}, err
	}

	return dto.NewInterventionResponse(updated), nil
}
