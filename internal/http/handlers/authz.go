package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	applog "cottoncare/internal/log"
)

func toLogin(c *fiber.Ctx) error {
	return c.Redirect("/login?redirect=" + url.QueryEscape(c.OriginalURL()))
}

// RequireUser sends anonymous visitors to the login page, keeping where they were going.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userOf(c) == nil {
			return toLogin(c)
		}
		return c.Next()
	}
}

// RequireAdmin is RequireUser plus a 403 for signed-in non-admins.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := userOf(c)
		if u == nil {
			return toLogin(c)
		}
		if !u.IsAdmin {
			applog.Security(c, "access.denied.admin", map[string]any{"user_id": u.ID})
			return fail(c, fiber.StatusForbidden, "access restricted")
		}
		return c.Next()
	}
}

// safeRedirect accepts only local absolute paths.
func safeRedirect(raw string) string {
	if raw == "" || raw[0] != '/' || (len(raw) > 1 && (raw[1] == '/' || raw[1] == '\\')) {
		return "/"
	}
	return raw
}
