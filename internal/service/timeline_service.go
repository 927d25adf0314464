package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/thilanga24/dropout-prevention-api/internal/dto"
	"github.com/thilanga24/dropout-prevention-api/internal/repository"
)

// TimelineService assembles the full audit history for one student.
type TimelineService interface {
	GetTimeline(ctx context.Context, studentCode string) (dto.TimelineResponse, error)
}

type timelineService struct {
	students        repository.StudentRepository
	signals         repository.SignalRepository
	risks           repository.RiskRepository
	recommendations repository.RecommendationRepository
	interventions   repository.InterventionRepository
	logger          zerolog.Logger
}

// NewTimelineService constructs the timeline aggregator.
func NewTimelineService(
	students repository.StudentRepository,
	signals repository.SignalRepository,
	risks repository.RiskRepository,
	recommendations repository.RecommendationRepository,
	interventions repository.InterventionRepository,
	logger zerolog.Logger,
) TimelineService {
	return &timelineService{
		students:        students,
		signals:         signals,
		risks:           risks,
		recommendations: recommendations,
		interventions:   interventions,
		logger:          logger.With().Str("component", "timeline_service").Logger(),
	}
}

// GetTimeline returns every series for the student in ascending as_of order,
// matching insertion order within equal timestamps.
func (s *timelineService) GetTimeline(ctx context.Context, studentCode string) (dto.TimelineResponse, error) {
	student, err := s.students.GetByCode(ctx, strings.TrimSpace(studentCode))
	if err != nil {
		return dto.TimelineResponse{}, err
	}

	signals, err := s.signals.History(ctx, student.ID)
	if err != nil {
		return dto.TimelineResponse{}, err
	}

	risks, err := s.risks.History(ctx, student.ID)
	if err != nil {
		return dto.TimelineResponse{}, err
	}

	recommendations, err := s.recommendations.History(ctx, student.ID)
	if err != nil {
		return dto.TimelineResponse{}, err
	}

	interventions, err := s.interventions.History(ctx, student.ID)
	if err != nil {
		return dto.TimelineResponse{}, err
	}

	response := dto.TimelineResponse{
		Student:         dto.NewStudentResponse(student),
		Signals:         make([]dto.SignalResponse, 0, len(signals)),
		Risks:           make([]dto.RiskResponse, 0, len(risks)),
		Recommendations: make([]dto.RecommendationResponse, 0, len(recommendations)),
		Interventions:   make([]dto.InterventionResponse, 0, len(interventions)),
	}

	for _, signal := range signals {
		response.Signals = append(response.Signals, dto.NewSignalResponse(signal))
	}
	for _, snapshot := range risks {
		response.Risks = append(response.Risks, dto.NewRiskResponse(snapshot))
	}
	for _, recommendation := range recommendations {
		response.Recommendations = append(response.Recommendations, dto.NewRecommendationResponse(recommendation))
	}
	for _, intervention := range interventions {
		response.Interventions = append(response.Interventions, dto.NewInterventionResponse(intervention))
	}

	return response, nil
}
