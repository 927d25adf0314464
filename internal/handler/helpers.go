package handler

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/thilanga24/dropout-prevention-api/internal/risk"
	"github.com/thilanga24/dropout-prevention-api/internal/service"
	"github.com/thilanga24/dropout-prevention-api/internal/utils"
)

// sendServiceError maps service errors onto HTTP statuses.
func sendServiceError(c *fiber.Ctx, err error, fallback string) error {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, validationErrs.Error())
	case errors.Is(err, risk.ErrInvalidSignal):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrInvalidTransition):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "record not found")
	default:
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}

	return uint(parsed), nil
}
