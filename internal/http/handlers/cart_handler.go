package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "cottoncare/internal/log"
	"cottoncare/internal/services"
	"cottoncare/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

type addItemReq struct {
	ProductID string `json:"productId" form:"productId"`
	Quantity  int    `json:"quantity" form:"quantity"`
}

type setQtyReq struct {
	Quantity *int `json:"quantity" form:"quantity"`
}

func (h *CartHandler) reply(c *fiber.Ctx, v services.CartView) error {
	for _, n := range v.Notices {
		if n.Kind == services.NoticeSaveFailed {
			applog.Warn(c, "cart.save.fail", nil, map[string]any{"sid": sidOf(c)})
		}
	}
	return c.JSON(v)
}

// GET /api/v1/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	return h.reply(c, h.Cart.View(c.UserContext(), sidOf(c)))
}

// POST /api/v1/cart/items
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req addItemReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	pid, ok := validate.ID(req.ProductID)
	if !ok {
		applog.Security(c, "cart.add.invalid", map[string]any{"product_id": req.ProductID})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	v, err := h.Cart.Add(c.UserContext(), sidOf(c), pid, req.Quantity)
	if err != nil {
		return respondErr(c, "cart.add", err)
	}
	applog.Info(c, "cart.add", map[string]any{"product_id": pid, "qty": req.Quantity})
	return h.reply(c, v)
}

// PATCH /api/v1/cart/items/:id
func (h *CartHandler) Update(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	var req setQtyReq
	if err := c.BodyParser(&req); err != nil || req.Quantity == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "quantity is required"})
	}
	return h.reply(c, h.Cart.UpdateQuantity(c.UserContext(), sidOf(c), pid, *req.Quantity))
}

// DELETE /api/v1/cart/items/:id
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	return h.reply(c, h.Cart.Remove(c.UserContext(), sidOf(c), pid))
}

// DELETE /api/v1/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	return h.reply(c, h.Cart.Clear(c.UserContext(), sidOf(c)))
}
