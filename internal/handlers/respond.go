package handlers

import (
	"fmt"
	"log"

	"cardshop/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError converts a service error into the structured {error: message}
// body with the status its kind maps to. Internal detail never crosses the
// boundary; it is logged here instead.
func respondError(c *fiber.Ctx, err error) error {
	if apperrors.KindOf(err) == apperrors.Internal {
		log.Printf("Internal error on %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(apperrors.StatusCode(err)).JSON(fiber.Map{
		"error": apperrors.ClientMessage(err),
	})
}

// respondValidationError turns validator failures into a 400 with per-field
// messages.
func respondValidationError(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Validation failed",
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "Validation failed",
		"fields": errorMessages,
	})
}

// respondBadBody is the shared reply for an unparseable request body.
func respondBadBody(c *fiber.Ctx, err error) error {
	log.Printf("Error parsing request body on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid request body",
	})
}
