package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cottoncare/internal/services"
	"cottoncare/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /api/v1/products?disease=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"products": h.Catalog.List(c.UserContext(), c.Query("disease"))})
}

// GET /api/v1/products/:id
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "This item is no longer available")
	}
	p, found := h.Catalog.Get(c.UserContext(), id)
	if !found {
		return fail(c, fiber.StatusNotFound, "This item is no longer available")
	}
	return c.JSON(p)
}
