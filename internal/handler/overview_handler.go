package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/thilanga24/dropout-prevention-api/internal/service"
	"github.com/thilanga24/dropout-prevention-api/internal/utils"
)

// OverviewHandler exposes the latest-risk-per-student listing.
type OverviewHandler struct {
	overview service.RiskOverviewService
	logger   zerolog.Logger
}

// NewOverviewHandler creates a new handler instance.
func NewOverviewHandler(overview service.RiskOverviewService, logger zerolog.Logger) *OverviewHandler {
	return &OverviewHandler{
		overview: overview,
		logger:   logger.With().Str("component", "overview_handler").Logger(),
	}
}

// Register attaches the overview endpoint.
func (h *OverviewHandler) Register(router fiber.Router) {
	router.Get("/overview", h.getOverview)
}

func (h *OverviewHandler) getOverview(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}

	overview, err := h.overview.GetOverview(c.UserContext(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load risk overview")
		return sendServiceError(c, err, "failed to load risk overview")
	}

	return utils.SendSuccess(c, "risk overview retrieved", overview)
}
