package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// HTTPError lets services pick a status code for an error without importing fiber.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusFor maps an error returned by a handler to an HTTP status.
func StatusFor(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return fiber.StatusBadRequest
	}
	var he HTTPError
	if errors.As(err, &he) {
		return he.StatusCode()
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler renders any handler error as the standard envelope.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := StatusFor(err)
	msg := err.Error()
	if code == fiber.StatusInternalServerError {
		msg = "Internal server error"
	}

	res := ErrorResponse(code, msg)
	var ve *ValidationError
	if errors.As(err, &ve) {
		res.Message = "Validation failed"
		res.Data = ve.Fields
	}
	return ctx.Status(code).JSON(res)
}

// ErrorHandlerMiddleware converts errors from downstream handlers before Fiber's
// default handler sees them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return ErrorHandler(ctx, err)
	}
}
