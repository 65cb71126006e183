package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cottoncare/internal/domain"
	"cottoncare/internal/services"
)

const sidCookie = "sid"

func setSIDCookie(c *fiber.Ctx, sid string, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     sidCookie,
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   secure,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
}

// Sessions gives every visitor a sid cookie and attaches the signed-in user, if any.
// The cart lives under the sid, so it survives login and logout.
func Sessions(auth *services.AuthService, secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(sidCookie)
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.NewString()
			setSIDCookie(c, sid, secure)
		}
		c.Locals("sid", sid)
		if u, err := auth.CurrentUser(c.UserContext(), sid); err == nil && u != nil {
			c.Locals("user", u)
			c.Locals("userID", u.ID)
		}
		return c.Next()
	}
}

func sidOf(c *fiber.Ctx) string {
	sid, _ := c.Locals("sid").(string)
	return sid
}

func userOf(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
