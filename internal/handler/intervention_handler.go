package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/thilanga24/dropout-prevention-api/internal/dto"
	"github.com/thilanga24/dropout-prevention-api/internal/service"
	"github.com/thilanga24/dropout-prevention-api/internal/utils"
)

// InterventionHandler exposes the follow-up workflow endpoints.
type InterventionHandler struct {
	interventions service.InterventionService
	logger        zerolog.Logger
}

// NewInterventionHandler creates a new handler instance.
func NewInterventionHandler(interventions service.InterventionService, logger zerolog.Logger) *InterventionHandler {
	return &InterventionHandler{
		interventions: interventions,
		logger:        logger.With().Str("component", "intervention_handler").Logger(),
	}
}

// RegisterStudentRoutes attaches the student-scoped creation endpoint.
func (h *InterventionHandler) RegisterStudentRoutes(router fiber.Router) {
	router.Post("/:code/interventions", h.createIntervention)
}

// Register attaches the intervention-scoped endpoints.
func (h *InterventionHandler) Register(router fiber.Router) {
	router.Patch("/:id", h.updateIntervention)
}

func (h *InterventionHandler) createIntervention(c *fiber.Ctx) error {
	var req dto.InterventionCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	intervention, err := h.interventions.Create(c.UserContext(), c.Params("code"), req)
	if err != nil {
		h.logger.Error().Err(err).Str("student_code", c.Params("code")).Msg("failed to create intervention")
		return sendServiceError(c, err, "failed to create intervention")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "intervention recorded", intervention)
}

func (h *InterventionHandler) updateIntervention(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid intervention id")
	}

	var req dto.InterventionUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	intervention, err := h.interventions.Update(c.UserContext(), id, req)
	if err != nil {
		h.logger.Error().Err(err).Uint("intervention_id", id).Msg("failed to update intervention")
		return sendServiceError(c, err, "failed to update intervention")
	}

	return utils.SendSuccess(c, "intervention updated", intervention)
}
