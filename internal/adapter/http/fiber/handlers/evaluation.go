package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/lapeco-hr/internal/domain"
	"github.com/seu-repo/lapeco-hr/internal/ports"
)

const dateLayout = "2006-01-02"

type EvaluationHandler struct {
	service ports.EvaluationService
	log     *zap.Logger
}

func NewEvaluationHandler(service ports.EvaluationService, log *zap.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		service: service,
		log:     log,
	}
}

// SetPeriodRequest takes the same camelCase bounds as report params. The
// snake_case spellings are accepted as aliases.
type SetPeriodRequest struct {
	PeriodStart      string `json:"periodStart"`
	PeriodEnd        string `json:"periodEnd"`
	PeriodStartAlias string `json:"period_start,omitempty"`
	PeriodEndAlias   string `json:"period_end,omitempty"`
}

func (r SetPeriodRequest) bounds() (start, end string) {
	start, end = r.PeriodStart, r.PeriodEnd
	if strings.TrimSpace(start) == "" {
		start = r.PeriodStartAlias
	}
	if strings.TrimSpace(end) == "" {
		end = r.PeriodEndAlias
	}
	return start, end
}

func (h *EvaluationHandler) Get(c *fiber.Ctx) error {
	active, err := h.service.Get(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(active)
}

func (h *EvaluationHandler) Set(c *fiber.Ctx) error {
	var req SetPeriodRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	rawStart, rawEnd := req.bounds()
	start, err := parseDay("periodStart", rawStart)
	if err != nil {
		return err
	}
	end, err := parseDay("periodEnd", rawEnd)
	if err != nil {
		return err
	}

	if err := h.service.Set(c.UserContext(), domain.EvaluationPeriod{Start: start, End: end}); err != nil {
		return err
	}

	h.log.Info("Evaluation period updated",
		zap.String("start", rawStart),
		zap.String("end", rawEnd),
	)

	return h.Get(c)
}

func (h *EvaluationHandler) Clear(c *fiber.Ctx) error {
	if err := h.service.Clear(c.UserContext()); err != nil {
		return err
	}
	h.log.Info("Evaluation period cleared")
	return c.SendStatus(fiber.StatusNoContent)
}

func parseDay(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, domain.NewMissingField(field)
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, &domain.ValidationError{
			Kind:    domain.ValidationInvalidFormat,
			Field:   field,
			Message: fmt.Sprintf("%q is not a date (expected YYYY-MM-DD)", value),
		}
	}
	return t, nil
}
