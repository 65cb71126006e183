package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cottoncare/internal/domain"
	applog "cottoncare/internal/log"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u, ok := c.Locals("user").(*domain.User); ok && u != nil {
		data["User"] = u.Public()
	}
	if _, set := data["CSRFToken"]; !set {
		tok, _ := c.Locals("csrf").(string)
		if tok == "" {
			tok = c.Cookies("csrf_")
		}
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

func wantsHTML(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMEApplicationJSON, fiber.MIMETextHTML) == fiber.MIMETextHTML
}

// fail answers with a friendly message: the notfound page for browsers, JSON otherwise.
func fail(c *fiber.Ctx, status int, msg string) error {
	if wantsHTML(c) {
		if err := render(c.Status(status), "notfound", fiber.Map{"Message": msg}); err == nil {
			return nil
		}
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// NotFound is the catch-all route.
func NotFound(c *fiber.Ctx) error {
	return fail(c, fiber.StatusNotFound, "Page not found")
}

// ErrorHandler logs the error and hides its details from the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := "Something went wrong. Please try again."
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < 500 {
		status, msg = fe.Code, fe.Message
	}
	if status >= 500 {
		applog.Error(c, "server.error", err, nil)
	}
	return fail(c, status, msg)
}
