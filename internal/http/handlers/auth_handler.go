package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "cottoncare/internal/log"
	"cottoncare/internal/services"
	"cottoncare/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type loginReq struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Redirect string `json:"redirect" form:"redirect"`
}

// GET /login
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": "", "Redirect": safeRedirect(c.Query("redirect"))})
}

func (h *AuthHandler) loginFailed(c *fiber.Ctx, req loginReq) error {
	if c.Is("json") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}
	return render(c.Status(fiber.StatusUnauthorized), "login", fiber.Map{"Err": "Invalid email or password", "Redirect": safeRedirect(req.Redirect)})
}

// POST /api/v1/auth/login (JSON or form)
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	email, ok := validate.Email(req.Email)
	if !ok || req.Password == "" {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "bad_format"})
		return h.loginFailed(c, req)
	}
	u, err := h.Auth.Login(c.UserContext(), sidOf(c), email, req.Password)
	if errors.Is(err, services.ErrBadCreds) {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return h.loginFailed(c, req)
	}
	if err != nil {
		return respondErr(c, "auth.login", err)
	}
	c.Locals("userID", u.ID)
	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	if c.Is("json") {
		return c.JSON(fiber.Map{"user": u.Public()})
	}
	return c.Redirect(safeRedirect(req.Redirect))
}

// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in services.SignupInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	u, err := h.Auth.Signup(c.UserContext(), sidOf(c), in)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			applog.Security(c, "auth.signup.duplicate", map[string]any{"email": in.Email})
		}
		return respondErr(c, "auth.signup", err)
	}
	c.Locals("userID", u.ID)
	applog.Audit(c, "auth.signup", map[string]any{"email": u.Email})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": u.Public()})
}

// POST /api/v1/auth/logout. The sid is kept, so the cart stays with the browser.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.Auth.Logout(c.UserContext(), sidOf(c)); err != nil {
		applog.Error(c, "auth.logout.fail", err, nil)
	}
	applog.Audit(c, "auth.logout", nil)
	c.Locals("user", nil)
	if wantsHTML(c) {
		return c.Redirect("/")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u := userOf(c)
	if u == nil {
		return c.JSON(fiber.Map{"user": nil})
	}
	return c.JSON(fiber.Map{"user": u.Public()})
}

// PUT /api/v1/auth/me
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	u := userOf(c)
	var in services.ProfileInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	updated, err := h.Auth.UpdateProfile(c.UserContext(), u.ID, in)
	if err != nil {
		return respondErr(c, "auth.profile", err)
	}
	applog.Audit(c, "auth.profile.update", nil)
	return c.JSON(fiber.Map{"user": updated.Public()})
}
