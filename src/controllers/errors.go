package controllers

import (
	"errors"
	"fmt"

	"Bizonii-Backend/src/logger"
	"Bizonii-Backend/src/models"
	"Bizonii-Backend/src/services/forms"
	"Bizonii-Backend/src/services/submissions"
	"Bizonii-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

// HandleServiceError maps a service error to its status code and writes the
// ErrorResponse body.
func HandleServiceError(c *fiber.Ctx, err error) error {
	var missing *submissions.MissingFieldsError
	if errors.As(err, &missing) {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Fields:  missing.Placeholders,
		})
	}

	status := statusFor(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		log := logger.Component("http")
		log.Error().Err(err).Str("path", c.Path()).Msg("❌ request failed")
		message = "Internal server error"
	}
	return c.Status(status).JSON(models.ErrorResponse{Status: status, Message: message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, forms.ErrSchema),
		errors.Is(err, forms.ErrInvalidRetentionPeriod),
		errors.Is(err, submissions.ErrMissingRequiredFields),
		errors.Is(err, models.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// bindBody parses the JSON body into dst and checks its validate tags.
func bindBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	if err := utils.ValidateStruct(dst); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	return nil
}
