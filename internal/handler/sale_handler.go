package handler

import (
	"errors"
	"time"

	"go-cafe-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SaleHandler struct {
	service service.LedgerService
}

func NewSaleHandler(s service.LedgerService) *SaleHandler {
	return &SaleHandler{service: s}
}

// Helper to get user info from the session context (set by middleware)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return ""
	}
	return userID.(string)
}

// Helper to parse UUID from a route param
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// parseDateRange reads optional ?from=&to= RFC3339 bounds
func parseDateRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	fromParam := c.Query("from")
	toParam := c.Query("to")
	if fromParam == "" || toParam == "" {
		return nil, nil, nil
	}

	from, err := time.Parse(time.RFC3339, fromParam)
	if err != nil {
		return nil, nil, err
	}
	to, err := time.Parse(time.RFC3339, toParam)
	if err != nil {
		return nil, nil, err
	}
	return &from, &to, nil
}

func saleErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrSaleNotFound):
		return 404
	case service.IsValidation(err):
		return 400
	default:
		return 500
	}
}

// GetSales lists the caller's sales, newest first, optionally date-bounded
// GET /api/v1/sales?from=&to=
func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	userID, err := uuid.Parse(getUserID(c))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date range"})
	}

	sales, err := h.service.GetSales(userID, from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(sales)
}

// GetSaleItems returns the flat line-item view for the dashboard charts
// GET /api/v1/sale-items?from=&to=
func (h *SaleHandler) GetSaleItems(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date range"})
	}

	items, err := h.service.GetSaleItems(from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(items)
}

// CreateSale records a new sale with its line items
// POST /api/v1/sales
func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	userID, err := uuid.Parse(getUserID(c))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req service.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.service.CreateSale(userID, &req)
	if err != nil {
		return c.Status(saleErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": sale})
}

// UpdateSale replaces a sale's line-item set and recomputes the total
// PUT /api/v1/sales/:id
func (h *SaleHandler) UpdateSale(c *fiber.Ctx) error {
	saleID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	var req service.UpdateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.service.UpdateSale(saleID, &req)
	if err != nil {
		return c.Status(saleErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Sale updated", "data": sale})
}

// SetPaidStatusRequest represents the paid-flag toggle body
type SetPaidStatusRequest struct {
	IsPaid bool `json:"is_paid"`
}

// SetPaidStatus toggles the paid flag only
// PATCH /api/v1/sales/:id
func (h *SaleHandler) SetPaidStatus(c *fiber.Ctx) error {
	saleID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	var req SetPaidStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.service.SetPaidStatus(saleID, req.IsPaid)
	if err != nil {
		return c.Status(saleErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Sale status updated", "data": sale})
}

// DeleteSale removes a sale and its line items
// DELETE /api/v1/sales/:id
func (h *SaleHandler) DeleteSale(c *fiber.Ctx) error {
	saleID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	if err := h.service.DeleteSale(saleID); err != nil {
		return c.Status(saleErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Sale deleted successfully"})
}
