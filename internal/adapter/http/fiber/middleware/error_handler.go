package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"github.com/seu-repo/lapeco-hr/internal/domain"
	"github.com/seu-repo/lapeco-hr/internal/infrastructure/circuitbreaker"
)

// StatusFor maps an error returned by a handler to its HTTP status.
func StatusFor(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}

	var ve *domain.ValidationError
	var re *domain.RetrievalError
	switch {
	case errors.As(err, &ve), errors.Is(err, domain.ErrMissingReference):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownReport), errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case circuitbreaker.IsOpen(err):
		return fiber.StatusServiceUnavailable
	case errors.As(err, &re):
		return fiber.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler renders handler errors as JSON. Server-side failures are
// logged in full and answered with the bare status text.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := StatusFor(err)

		message := err.Error()
		if code >= fiber.StatusInternalServerError {
			message = utils.StatusMessage(code)
		}
		body := fiber.Map{"error": message}
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			body["field"] = ve.Field
			body["kind"] = ve.Kind
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("Request failed",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
				zap.Any("request_id", c.Locals("requestid")),
			)
		}

		return c.Status(code).JSON(body)
	}
}
