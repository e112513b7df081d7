package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	RequesterHeader = "X-Employee-ID"
	requesterKey    = "employee_id"
)

// Requester stores the acting employee, if the caller named one.
func Requester() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := strings.TrimSpace(c.Get(RequesterHeader)); id != "" {
			c.Locals(requesterKey, id)
		}
		return c.Next()
	}
}

// RequesterFrom returns the employee stored by Requester, or "".
func RequesterFrom(c *fiber.Ctx) string {
	id, _ := c.Locals(requesterKey).(string)
	return id
}
