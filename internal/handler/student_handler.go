package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/thilanga24/dropout-prevention-api/internal/dto"
	"github.com/thilanga24/dropout-prevention-api/internal/service"
	"github.com/thilanga24/dropout-prevention-api/internal/utils"
)

// StudentHandler exposes student identity and signal ingestion endpoints.
type StudentHandler struct {
	signals  service.SignalService
	timeline service.TimelineService
	logger   zerolog.Logger
}

// NewStudentHandler creates a new handler instance.
func NewStudentHandler(signals service.SignalService, timeline service.TimelineService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		signals:  signals,
		timeline: timeline,
		logger:   logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches the student endpoints.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Post("/", h.upsertStudent)
	router.Get("/:code", h.getStudent)
	router.Post("/:code/signals", h.ingestSignal)
	router.Get("/:code/signals/latest", h.latestSignal)
	router.Get("/:code/timeline", h.getTimeline)
}

func (h *StudentHandler) upsertStudent(c *fiber.Ctx) error {
	var req dto.StudentUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	student, err := h.signals.UpsertStudent(c.UserContext(), req)
	if err != nil {
		h.logger.Error().Err(err).Str("student_code", req.Code).Msg("failed to upsert student")
		return sendServiceError(c, err, "failed to upsert student")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student upserted", student)
}

func (h *StudentHandler) getStudent(c *fiber.Ctx) error {
	student, err := h.signals.GetStudent(c.UserContext(), c.Params("code"))
	if err != nil {
		return sendServiceError(c, err, "failed to load student")
	}

	return utils.SendSuccess(c, "student retrieved", student)
}

func (h *StudentHandler) ingestSignal(c *fiber.Ctx) error {
	var req dto.SignalCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	signal, err := h.signals.Ingest(c.UserContext(), c.Params("code"), req)
	if err != nil {
		h.logger.Error().Err(err).Str("student_code", c.Params("code")).Msg("failed to ingest signal")
		return sendServiceError(c, err, "failed to ingest signal")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "signal recorded", signal)
}

func (h *StudentHandler) latestSignal(c *fiber.Ctx) error {
	signal, err := h.signals.Latest(c.UserContext(), c.Params("code"))
	if err != nil {
		return sendServiceError(c, err, "failed to load latest signal")
	}

	return utils.SendSuccess(c, "latest signal retrieved", signal)
}

func (h *StudentHandler) getTimeline(c *fiber.Ctx) error {
	timeline, err := h.timeline.GetTimeline(c.UserContext(), c.Params("code"))
	if err != nil {
		return sendServiceError(c, err, "failed to load timeline")
	}

	return utils.SendSuccess(c, "timeline retrieved", timeline)
}
