package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"cottoncare/internal/detect"
	applog "cottoncare/internal/log"
	"cottoncare/internal/services"
)

type DetectHandler struct {
	Detect  *detect.Client
	Catalog *services.CatalogService
}

// POST /api/v1/detect (multipart field "file")
func (h *DetectHandler) Predict(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return respondErr(c, "detect", detect.ErrEmpty)
	}
	if h.Detect.MaxBytes > 0 && fh.Size > int64(h.Detect.MaxBytes) {
		return respondErr(c, "detect", detect.ErrTooLarge)
	}
	f, err := fh.Open()
	if err != nil {
		return respondErr(c, "detect", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return respondErr(c, "detect", err)
	}

	p, err := h.Detect.Predict(c.UserContext(), fh.Filename, data)
	if err != nil {
		return respondUpstream(c, "detect", err)
	}
	applog.Info(c, "detect.predict", map[string]any{"label": p.Label, "confidence": p.Confidence})
	return c.JSON(fiber.Map{
		"prediction": p,
		"products":   h.Catalog.Recommend(c.UserContext(), p.Disease),
	})
}
