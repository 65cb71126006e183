package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cottoncare/internal/domain"
	applog "cottoncare/internal/log"
	"cottoncare/internal/services"
	"cottoncare/internal/validate"
)

type AdminHandler struct {
	Catalog *services.CatalogService
	Orders  *services.OrderService
	Auth    *services.AuthService
}

// GET /api/v1/admin/products
func (h *AdminHandler) Products(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"products": h.Catalog.List(c.UserContext(), "")})
}

// GET /api/v1/admin/products/:id
func (h *AdminHandler) Product(c *fiber.Ctx) error {
	p, ok := h.Catalog.Get(c.UserContext(), c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	return c.JSON(p)
}

// POST /api/v1/admin/products
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	p, err := h.Catalog.Create(c.UserContext(), in)
	if err != nil {
		return respondErr(c, "admin.products.create", err)
	}
	applog.Audit(c, "admin.products.create", map[string]any{"product_id": p.ID, "name": p.Name})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PUT /api/v1/admin/products/:id
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	var patch services.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	p, found, err := h.Catalog.Update(c.UserContext(), id, patch)
	if !found {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	if err != nil {
		return respondErr(c, "admin.products.update", err)
	}
	applog.Audit(c, "admin.products.update", map[string]any{"product_id": id})
	return c.JSON(p)
}

// DELETE /api/v1/admin/products/:id
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	found, err := h.Catalog.Delete(c.UserContext(), id)
	if err != nil {
		return respondErr(c, "admin.products.delete", err)
	}
	if !found {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/v1/admin/orders
func (h *AdminHandler) OrdersList(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"orders": h.Orders.ListAll(c.UserContext())})
}

// GET /api/v1/admin/orders/:id
func (h *AdminHandler) Order(c *fiber.Ctx) error {
	o, ok := h.Orders.Get(c.UserContext(), c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Order not found")
	}
	return c.JSON(o)
}

type statusReq struct {
	Status string `json:"status" form:"status"`
}

// POST /api/v1/admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var req statusReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	next, ok := domain.ParseOrderStatus(req.Status)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown status"})
	}
	o, found, err := h.Orders.UpdateStatus(c.UserContext(), id, next)
	if !found {
		return fail(c, fiber.StatusNotFound, "Order not found")
	}
	if err != nil {
		return respondErr(c, "admin.orders.update", err)
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": next})
	return c.JSON(o)
}

// GET /api/v1/admin/users
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"users": h.Auth.ListUsers(c.UserContext())})
}
