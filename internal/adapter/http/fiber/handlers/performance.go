package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/lapeco-hr/internal/ports"
)

type PerformanceHandler struct {
	service ports.PerformanceService
	log     *zap.Logger
}

func NewPerformanceHandler(service ports.PerformanceService, log *zap.Logger) *PerformanceHandler {
	return &PerformanceHandler{
		service: service,
		log:     log,
	}
}

func (h *PerformanceHandler) KraSummaries(c *fiber.Ctx) error {
	summaries, err := h.service.KraSummaries(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"kras": summaries})
}

func (h *PerformanceHandler) KraSummary(c *fiber.Ctx) error {
	summary, err := h.service.KraSummary(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

func (h *PerformanceHandler) PayrollHistory(c *fiber.Ctx) error {
	entries, err := h.service.PayrollHistory(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"employee_id": c.Params("id"), "history": entries})
}
