package httperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// E represents an HTTP error with status code and message
type E struct {
	Status  int    `json:"-" example:"400"`
	Message string `json:"error" example:"Bad Request"`
}

// Error implements the error interface
func (e E) Error() string {
	return e.Message
}

// JSON returns the error as JSON response
func (e E) JSON(c *fiber.Ctx) error {
	return c.Status(e.Status).JSON(e)
}

// Fail returns the error for Fiber's global error handler to process
func Fail(err E) error {
	return err
}

// InvalidInput wraps a validation error and returns the standard response.
func InvalidInput(err error) error {
	return Fail(E{
		Status:  fiber.StatusBadRequest,
		Message: "Invalid input: " + err.Error(),
	})
}

// NotFound returns a 404 carrying err's message.
func NotFound(err error) error {
	return Fail(E{Status: fiber.StatusNotFound, Message: err.Error()})
}

// Pre-defined HTTP errors
var (
	ErrBadRequest         = E{Status: fiber.StatusBadRequest, Message: "Bad Request"}
	ErrInvalidID          = E{Status: fiber.StatusBadRequest, Message: "Invalid identifier"}
	ErrUnauthorized       = E{Status: fiber.StatusUnauthorized, Message: "Unauthorized"}
	ErrPayloadTooLarge    = E{Status: fiber.StatusRequestEntityTooLarge, Message: "Payload Too Large"}
	ErrTooManyRequests    = E{Status: fiber.StatusTooManyRequests, Message: "Too Many Requests"}
	ErrInternal           = E{Status: fiber.StatusInternalServerError, Message: "Internal Server Error"}
	ErrNotImplemented     = E{Status: fiber.StatusNotImplemented, Message: "Not Implemented"}
	ErrServiceUnavailable = E{Status: fiber.StatusServiceUnavailable, Message: "Service Unavailable"}
)

// Handler is the global error handler for Fiber
func Handler(c *fiber.Ctx, err error) error {
	var e E
	if errors.As(err, &e) {
		return e.JSON(c)
	}

	var fiberError *fiber.Error
	if errors.As(err, &fiberError) {
		return c.Status(fiberError.Code).JSON(E{
			Status:  fiberError.Code,
			Message: fiberError.Message,
		})
	}

	return ErrInternal.JSON(c)
}
