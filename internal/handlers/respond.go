package handlers

import (
	"github.com/gofiber/fiber/v2"

	"kedai/internal/apperr"
)

// respondError maps the failure taxonomy to HTTP status codes. Every
// error body is {"error": <message>}.
func respondError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	switch {
	case apperr.IsValidation(err):
		code = fiber.StatusBadRequest
	case apperr.IsNotFound(err):
		code = fiber.StatusNotFound
	case apperr.IsConflict(err):
		code = fiber.StatusConflict
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
