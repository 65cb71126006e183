package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cottoncare/internal/advisor"
	"cottoncare/internal/domain"
	applog "cottoncare/internal/log"
	"cottoncare/internal/services"
)

// AdviceHandler serves the generative flows. Advice is nil when no model is configured.
type AdviceHandler struct {
	Advice *services.AdviceService
}

func (h *AdviceHandler) unavailable(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "AI advice is not available."})
}

// GET /api/v1/advice?disease=
func (h *AdviceHandler) ForDisease(c *fiber.Ctx) error {
	if h.Advice == nil {
		return h.unavailable(c)
	}
	raw := c.Query("disease")
	d := domain.Disease(raw)
	if raw == "" || !d.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown disease"})
	}
	a, err := h.Advice.ForDisease(c.UserContext(), d)
	if err != nil {
		return respondUpstream(c, "advice", err)
	}
	applog.Info(c, "advice.generate", map[string]any{"disease": raw})
	return c.JSON(a)
}

// POST /api/v1/advice/summary
func (h *AdviceHandler) Summary(c *fiber.Ctx) error {
	if h.Advice == nil {
		return h.unavailable(c)
	}
	var in advisor.SummaryInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	out, err := h.Advice.Advisor.Summarize(c.UserContext(), in)
	if err != nil {
		return respondUpstream(c, "advice.summary", err)
	}
	return c.JSON(out)
}

// POST /api/v1/advice/treatment
func (h *AdviceHandler) Treatment(c *fiber.Ctx) error {
	if h.Advice == nil {
		return h.unavailable(c)
	}
	var in advisor.TreatmentInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	out, err := h.Advice.Advisor.SuggestTreatment(c.UserContext(), in)
	if err != nil {
		return respondUpstream(c, "advice.treatment", err)
	}
	return c.JSON(out)
}

// POST /api/v1/advice/planting-tips
func (h *AdviceHandler) PlantingTips(c *fiber.Ctx) error {
	if h.Advice == nil {
		return h.unavailable(c)
	}
	var in advisor.PlantingTipsInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	out, err := h.Advice.Advisor.PlantingTips(c.UserContext(), in)
	if err != nil {
		return respondUpstream(c, "advice.planting_tips", err)
	}
	return c.JSON(out)
}
