package serverutils

import (
	"errors"

	"rnd-intake-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by downstream handlers into the
// standard envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status, message := resolveError(err)
		return ctx.Status(status).JSON(ErrorResponse(status, message))
	}
}

// FiberErrorHandler is installed as fiber.Config.ErrorHandler for errors
// raised outside the middleware chain (routing, body limits).
func FiberErrorHandler(ctx *fiber.Ctx, err error) error {
	status, message := resolveError(err)
	return ctx.Status(status).JSON(ErrorResponse(status, message))
}

func resolveError(err error) (int, string) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return fiber.StatusBadRequest, FormatValidationErrors(validationErrs)
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr.Kind.Status(), err.Error()
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	return fiber.StatusInternalServerError, "internal server error"
}
