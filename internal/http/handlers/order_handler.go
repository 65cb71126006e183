package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "cottoncare/internal/log"
	"cottoncare/internal/services"
	"cottoncare/internal/validate"
)

type OrderHandler struct {
	Checkout *services.CheckoutService
	Orders   *services.OrderService
}

// POST /api/v1/checkout
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	u := userOf(c)
	var in services.CheckoutInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	r, err := h.Checkout.Checkout(c.UserContext(), sidOf(c), u.ID, in)
	if err != nil {
		return respondErr(c, "order.place", err)
	}
	if r.Warning != "" {
		applog.Warn(c, "order.history.fail", nil, map[string]any{"order_id": r.Order.ID})
	}
	applog.Audit(c, "order.place", map[string]any{"order_id": r.Order.ID, "total": r.Total, "items": len(r.Order.Items)})
	return c.Status(fiber.StatusCreated).JSON(r)
}

// GET /api/v1/orders
func (h *OrderHandler) History(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"orders": h.Orders.ListForCustomer(c.UserContext(), userOf(c).ID)})
}

// GET /api/v1/orders/:id, visible to its customer and to admins.
func (h *OrderHandler) View(c *fiber.Ctx) error {
	u := userOf(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Order not found")
	}
	o, found := h.Orders.Get(c.UserContext(), id)
	if !found || (o.CustomerID != u.ID && !u.IsAdmin) {
		if found {
			applog.Security(c, "order.view.denied", map[string]any{"order_id": id})
		}
		return fail(c, fiber.StatusNotFound, "Order not found")
	}
	return c.JSON(o)
}
