package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/thilanga24/dropout-prevention-api/internal/dto"
	"github.com/thilanga24/dropout-prevention-api/internal/repository"
)

// RiskOverviewService produces the latest-risk-per-student listing the
// advisory dashboard reads.
type RiskOverviewService interface {
	GetOverview(ctx context.Context, limit int) (dto.RiskOverviewResponse, error)
}

type riskOverviewService struct {
	risks    repository.RiskRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewRiskOverviewService builds the overview aggregator.
func NewRiskOverviewService(risks repository.RiskRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) RiskOverviewService {
	return &riskOverviewService{
		risks:    risks,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "risk_overview_service").Logger(),
		now:      time.Now,
	}
}

func (s *riskOverviewService) GetOverview(ctx context.Context, limit int) (dto.RiskOverviewResponse, error) {
	if limit <= 0 {
		limit = 200
	}

	cacheKey := fmt.Sprintf("overview:risk:%d", limit)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.RiskOverviewResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Int("limit", limit).Msg("risk overview cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read risk overview cache")
		}
	}

	snapshots, err := s.risks.ListLatest(ctx, limit)
	if err != nil {
		return dto.RiskOverviewResponse{}, err
	}

	response := dto.RiskOverviewResponse{
		Entries:     make([]dto.RiskOverviewEntry, 0, len(snapshots)),
		GeneratedAt: s.now().UTC(),
	}
	for _, snapshot := range snapshots {
		response.Entries = append(response.Entries, dto.NewRiskOverviewEntry(snapshot))
	}

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store risk overview cache")
			}
		}
	}

	return response, nil
}
