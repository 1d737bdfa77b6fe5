package utils

import (
	"github.com/gofiber/fiber/v2"
)

// SuccessResponse sends a success JSON response
func SuccessResponse(c *fiber.Ctx, data any, message string, code ...int) error {
	statusCode := fiber.StatusOK
	if len(code) > 0 {
		statusCode = code[0]
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"success": true,
		"data":    data,
		"message": message,
	})
}

// ErrorResponse sends an APIError as a JSON response using its status code
func ErrorResponse(c *fiber.Ctx, apiErr *APIError) error {
	return c.Status(apiErr.Status).JSON(fiber.Map{
		"success": false,
		"error":   apiErr.Message,
		"code":    apiErr.Code,
	})
}

// FieldError describes a validation failure for a single input field
type FieldError struct {
	Message string `json:"message"`
	Field   string `json:"field"`
}

// FieldErrorResponse sends a 400 with per-field validation messages
func FieldErrorResponse(c *fiber.Ctx, errs ...FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"errorsMessages": errs,
	})
}
