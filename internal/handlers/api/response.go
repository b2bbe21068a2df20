package api

import (
	"encoding/json"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"linkshare/internal/models"
)

// Generic messages. Failure messages never reveal which check failed.
const (
	msgInvalidInput = "Invalid Input"
	msgUnauthorized = "Unauthorized"
	msgServerError  = "Server Error"
	msgSignInFailed = "Sign-in failed."
	msgRefreshFail  = "Refresh failed."
	msgSuccess      = "Success"
)

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, message string, data any) error {
	return c.JSON(models.Envelope{Message: message, Data: data})
}

// jsonCreated returns a 201 response with data wrapped in the standard envelope.
func jsonCreated(c fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(models.Envelope{Message: message, Data: data})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.Envelope{Message: message})
}

// serverError logs err and returns the generic 500 response.
func serverError(c fiber.Ctx, op string, err error) error {
	slog.Error(op, "error", err, "method", c.Method(), "path", c.Path())
	return jsonError(c, fiber.StatusInternalServerError, msgServerError)
}

// decodeBody unmarshals the JSON request body into v.
func decodeBody(c fiber.Ctx, v any) error {
	return json.Unmarshal(c.Body(), v)
}
