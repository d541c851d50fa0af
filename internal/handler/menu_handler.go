package handler

import (
	"errors"

	"go-cafe-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type MenuHandler struct {
	service service.CatalogService
}

func NewMenuHandler(s service.CatalogService) *MenuHandler {
	return &MenuHandler{service: s}
}

// GetMenuItems lists the whole catalog
// GET /api/v1/menu-items
func (h *MenuHandler) GetMenuItems(c *fiber.Ctx) error {
	items, err := h.service.GetAllMenuItems()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(items)
}

// CreateMenuItem adds a catalog entry
// POST /api/v1/menu-items
func (h *MenuHandler) CreateMenuItem(c *fiber.Ctx) error {
	var req service.MenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.CreateMenuItem(&req)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Menu item created", "data": item})
}

// UpdateMenuItem applies an administrative edit
// PUT /api/v1/menu-items/:id
func (h *MenuHandler) UpdateMenuItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid menu item ID"})
	}

	var req service.MenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.UpdateMenuItem(id, &req)
	if err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Menu item updated", "data": item})
}

// DeleteMenuItem removes a catalog entry and cascades through dependent
// sale items and emptied sales
// DELETE /api/v1/menu-items/:id
func (h *MenuHandler) DeleteMenuItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid menu item ID"})
	}

	item, err := h.service.DeleteMenuItem(id)
	if err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete menu item"})
	}

	return c.JSON(fiber.Map{"message": "Menu item deleted", "data": item})
}
