package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/seu-repo/lapeco-hr/internal/infrastructure/circuitbreaker"
)

// CircuitBreaker sheds load once handlers keep failing with 5xx statuses.
// Client errors never count against the circuit.
func CircuitBreaker(settings circuitbreaker.Settings, log *zap.Logger) fiber.Handler {
	cb := circuitbreaker.New(settings, log)

	return func(c *fiber.Ctx) error {
		var handlerErr error
		_, err := cb.Execute(func() (interface{}, error) {
			handlerErr = c.Next()
			if handlerErr != nil && StatusFor(handlerErr) >= fiber.StatusInternalServerError {
				return nil, handlerErr
			}
			if c.Response().StatusCode() >= fiber.StatusInternalServerError {
				return nil, fiber.NewError(c.Response().StatusCode())
			}
			return nil, nil
		})

		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Service temporarily unavailable",
			})
		}

		return handlerErr
	}
}
