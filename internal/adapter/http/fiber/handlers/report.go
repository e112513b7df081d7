package handlers

import (
	"mime"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/lapeco-hr/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/lapeco-hr/internal/domain"
	"github.com/seu-repo/lapeco-hr/internal/ports"
)

type ReportHandler struct {
	service ports.ReportService
	log     *zap.Logger
}

func NewReportHandler(service ports.ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log,
	}
}

type GenerateReportRequest struct {
	Params map[string]any `json:"params"`
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"reports": h.service.Catalog()})
}

func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	var req GenerateReportRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
		}
	}

	result, err := h.service.Generate(c.UserContext(), domain.GenerationRequest{
		ReportID:  domain.ReportID(c.Params("id")),
		Params:    req.Params,
		Requester: middleware.RequesterFrom(c),
	})
	if err != nil {
		return err
	}

	return sendFile(c, result.ContentType, result.Filename, result.Data)
}

func (h *ReportHandler) LeaveAttachment(c *fiber.Ctx) error {
	blob, err := h.service.RetrieveAttachment(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return sendFile(c, blob.ContentType, blob.Filename, blob.Data)
}

func sendFile(c *fiber.Ctx, contentType, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	if disposition := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); disposition != "" {
		c.Set(fiber.HeaderContentDisposition, disposition)
	}
	return c.Send(data)
}
