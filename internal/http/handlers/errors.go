package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"cottoncare/internal/advisor"
	"cottoncare/internal/detect"
	"cottoncare/internal/domain"
	applog "cottoncare/internal/log"
	"cottoncare/internal/services"
	"cottoncare/internal/validate"
)

// respondErr maps a service error onto a status and a message safe to show.
func respondErr(c *fiber.Ctx, action string, err error) error {
	var fe validate.FieldErrors
	switch {
	case errors.As(err, &fe):
		applog.Security(c, "validation.fail", map[string]any{"action": action, "fields": fe})
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Please correct the highlighted fields.", "fields": fe})
	case errors.Is(err, services.ErrBadCreds):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	case errors.Is(err, services.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "An account with this email already exists."})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Your cart is empty."})
	case errors.Is(err, services.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "This item is no longer available"})
	case errors.Is(err, detect.ErrEmpty), errors.Is(err, detect.ErrNotImage):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please upload a photo of a cotton leaf."})
	case errors.Is(err, detect.ErrTooLarge):
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "The image is too large."})
	case errors.Is(err, detect.ErrRemote), errors.Is(err, detect.ErrBadAnswer):
		applog.Error(c, action+".fail", err, nil)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Disease detection is unavailable right now. Please try again."})
	case errors.Is(err, advisor.ErrMalformedResponse), errors.Is(err, context.DeadlineExceeded):
		applog.Error(c, action+".fail", err, nil)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Advice could not be generated right now. Please try again."})
	}
	applog.Error(c, action+".fail", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong. Please try again."})
}

// respondUpstream is respondErr for handlers whose only failure source besides bad
// input is an outbound call.
func respondUpstream(c *fiber.Ctx, action string, err error) error {
	var fe validate.FieldErrors
	if errors.As(err, &fe) || errors.Is(err, detect.ErrEmpty) || errors.Is(err, detect.ErrNotImage) || errors.Is(err, detect.ErrTooLarge) {
		return respondErr(c, action, err)
	}
	applog.Error(c, action+".fail", err, nil)
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "This service is unavailable right now. Please try again."})
}
