package health

import (
	"github.com/gofiber/fiber/v2"
)

// FiberHandler exposes liveness and readiness over HTTP.
type FiberHandler struct {
	service *Service
}

// NewFiberHandler creates the health check handler.
func NewFiberHandler(service *Service) *FiberHandler {
	return &FiberHandler{service: service}
}

// RegisterRoutes mounts both the /health/* paths and the short
// /healthz and /readyz aliases used by orchestrators.
func (h *FiberHandler) RegisterRoutes(app *fiber.App) {
	for _, path := range []string{"/health/live", "/healthz"} {
		app.Get(path, h.Live)
	}
	for _, path := range []string{"/health/ready", "/readyz"} {
		app.Get(path, h.Ready)
	}
}

// Live answers 200 while the process is serving.
func (h *FiberHandler) Live(c *fiber.Ctx) error {
	return c.JSON(h.service.Health(c.UserContext()))
}

// Ready answers 503 while the database check is failing. Degraded
// cache, queue or attachment-store checks still report ready.
func (h *FiberHandler) Ready(c *fiber.Ctx) error {
	resp := h.service.Ready(c.UserContext())
	if !resp.Ready {
		c.Status(fiber.StatusServiceUnavailable)
	}
	return c.JSON(resp)
}
