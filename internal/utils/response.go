package utils

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"

	"veleco/internal/errors"
)

// Response is the envelope returned by every endpoint.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Success sends a successful JSON response.
func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, Response{Success: true, Data: data})
}

// SuccessMessage sends a successful JSON response with a message.
func SuccessMessage(c *fiber.Ctx, data interface{}, message string) error {
	return Respond(c, fiber.StatusOK, Response{Success: true, Data: data, Message: message})
}

// Created sends a JSON response with status 201.
func Created(c *fiber.Ctx, data interface{}, message string) error {
	return Respond(c, fiber.StatusCreated, Response{Success: true, Data: data, Message: message})
}

// NoContent sends an empty response with status 204.
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// BadRequest sends a JSON error response with status 400.
func BadRequest(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusBadRequest, Response{Success: false, Error: message})
}

// Unauthorized sends a JSON error response with status 401.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusUnauthorized, Response{Success: false, Error: message})
}

// NotFound sends a JSON error response with status 404.
func NotFound(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusNotFound, Response{Success: false, Error: message})
}

// Conflict sends a JSON error response with status 409.
func Conflict(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusConflict, Response{Success: false, Error: message})
}

// InternalError sends a JSON error response with status 500.
func InternalError(c *fiber.Ctx, message string) error {
	return Respond(c, fiber.StatusInternalServerError, Response{Success: false, Error: message})
}

// DomainErrorResponse maps a service error to its HTTP status. Unknown errors
// are reported as a generic persistence failure; the detail stays in the logs.
func DomainErrorResponse(c *fiber.Ctx, err error) error {
	var derr *errors.DomainError
	if stderrors.As(err, &derr) {
		status := fiber.StatusInternalServerError
		switch derr.Kind {
		case errors.KindValidation, errors.KindInsufficient:
			status = fiber.StatusBadRequest
		case errors.KindNotFound:
			status = fiber.StatusNotFound
		case errors.KindConflict:
			status = fiber.StatusConflict
		}
		return Respond(c, status, Response{Success: false, Error: derr.Message, Code: derr.Code})
	}
	return InternalError(c, "internal server error")
}
