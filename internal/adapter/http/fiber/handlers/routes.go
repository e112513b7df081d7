package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seu-repo/lapeco-hr/internal/adapter/http/fiber/middleware"
)

type Handlers struct {
	Reports     *ReportHandler
	Evaluation  *EvaluationHandler
	Performance *PerformanceHandler
}

// RegisterRoutes mounts the API under /api/v1.
func RegisterRoutes(app *fiber.App, h Handlers) {
	api := app.Group("/api/v1", middleware.Requester())

	api.Get("/reports", h.Reports.List)
	api.Post("/reports/:id/generate", h.Reports.Generate)
	api.Get("/leaves/:id/attachment", h.Reports.LeaveAttachment)

	api.Get("/employees/:id/payroll-history", h.Performance.PayrollHistory)
	api.Get("/kras/summary", h.Performance.KraSummaries)
	api.Get("/kras/:id/summary", h.Performance.KraSummary)

	api.Get("/evaluation-period", h.Evaluation.Get)
	api.Put("/evaluation-period", h.Evaluation.Set)
	api.Delete("/evaluation-period", h.Evaluation.Clear)
}
