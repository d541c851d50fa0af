package handler

import (
	"go-cafe-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetDashboardSummary returns totals, per-item quantities and the
// sales-per-day series for the dashboard
// GET /api/v1/dashboard/summary?from=&to=
func (h *ReportHandler) GetDashboardSummary(c *fiber.Ctx) error {
	userID, err := uuid.Parse(getUserID(c))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date range"})
	}

	summary, err := h.service.GetDashboardSummary(userID, from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(summary)
}

// ExportExcel streams the sales report workbook
// GET /api/v1/reports/export/xlsx?from=&to=
func (h *ReportHandler) ExportExcel(c *fiber.Ctx) error {
	userID, err := uuid.Parse(getUserID(c))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date range"})
	}

	f, err := h.service.BuildExcelReport(userID, from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build report"})
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", "attachment; filename=sales-report.xlsx")
	return f.Write(c.Response().BodyWriter())
}

// ExportPDF streams the sales report PDF
// GET /api/v1/reports/export/pdf?from=&to=
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	userID, err := uuid.Parse(getUserID(c))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date range"})
	}

	data, err := h.service.BuildPDFReport(userID, from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build report"})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", "attachment; filename=sales-report.pdf")
	return c.Send(data)
}
