package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/thilanga24/dropout-prevention-api/internal/dto"
	"github.com/thilanga24/dropout-prevention-api/internal/service"
	"github.com/thilanga24/dropout-prevention-api/internal/utils"
)

// AgentHandler exposes the batch scoring run endpoint.
type AgentHandler struct {
	agent  service.AgentService
	logger zerolog.Logger
}

// NewAgentHandler creates a new handler instance.
func NewAgentHandler(agent service.AgentService, logger zerolog.Logger) *AgentHandler {
	return &AgentHandler{
		agent:  agent,
		logger: logger.With().Str("component", "agent_handler").Logger(),
	}
}

// Register attaches the agent endpoints.
func (h *AgentHandler) Register(router fiber.Router) {
	router.Post("/run", h.runBatch)
}

func (h *AgentHandler) runBatch(c *fiber.Ctx) error {
	var req dto.AgentRunRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
		}
	}

	result, err := h.agent.RunBatch(c.UserContext(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("batch run failed to start")
		return sendServiceError(c, err, "batch run failed")
	}

	return utils.SendSuccess(c, "batch run completed", result)
}
