package handlers

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"cottoncare/internal/config"
	applog "cottoncare/internal/log"
)

//go:embed templates/*.html
var templatesFS embed.FS

func Engine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}

// NewApp builds the Fiber app: middleware, routes and the friendly error surface.
func NewApp(cfg config.Config, d *Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        Engine(),
		ErrorHandler: ErrorHandler,
		BodyLimit:    cfg.MaxUploadBytes + 1<<20, // upload plus multipart overhead
	})

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateMax,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))
	app.Use(Sessions(d.Auth, cfg.CookieSecure))
	if cfg.CSRF {
		app.Use(csrf.New(csrf.Config{
			Extractor: func(c *fiber.Ctx) (string, error) {
				if tok, err := csrf.CsrfFromHeader(csrf.HeaderName)(c); err == nil {
					return tok, nil
				}
				return csrf.CsrfFromForm("csrf")(c)
			},
			CookieName:     "csrf_",
			CookieSameSite: "Lax",
			CookieSecure:   cfg.CookieSecure,
			ContextKey:     "csrf",
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				applog.Security(c, "csrf.fail", map[string]any{"reason": err.Error()})
				return fail(c, fiber.StatusForbidden, "Security check failed. Please refresh and try again.")
			},
		}))
	}

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/", func(c *fiber.Ctx) error { return render(c, "home", nil) })
	app.Get("/login", d.AuthHandler.LoginForm)

	api := app.Group("/api/v1")

	api.Get("/products", d.ProductHandler.List)
	api.Get("/products/:id", d.ProductHandler.Detail)

	api.Get("/cart", d.CartHandler.View)
	api.Post("/cart/items", d.CartHandler.Add)
	api.Patch("/cart/items/:id", d.CartHandler.Update)
	api.Delete("/cart/items/:id", d.CartHandler.Remove)
	api.Delete("/cart", d.CartHandler.Clear)

	api.Post("/checkout", RequireUser(), d.OrderHandler.Place)
	api.Get("/orders", RequireUser(), d.OrderHandler.History)
	api.Get("/orders/:id", RequireUser(), d.OrderHandler.View)

	api.Post("/detect", limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|detect"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.detect.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}), d.DetectHandler.Predict)

	api.Get("/advice", d.AdviceHandler.ForDisease)
	api.Post("/advice/summary", d.AdviceHandler.Summary)
	api.Post("/advice/treatment", d.AdviceHandler.Treatment)
	api.Post("/advice/planting-tips", d.AdviceHandler.PlantingTips)

	auth := api.Group("/auth")
	auth.Post("/login", limiter.New(limiter.Config{
		Max:        cfg.LoginRateMax,
		Expiration: 10 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|login"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	}), d.AuthHandler.Login)
	auth.Post("/signup", d.AuthHandler.Signup)
	auth.Post("/logout", d.AuthHandler.Logout)
	auth.Get("/me", d.AuthHandler.Me)
	auth.Put("/me", RequireUser(), d.AuthHandler.UpdateMe)

	admin := api.Group("/admin", RequireAdmin())
	admin.Get("/products", d.AdminHandler.Products)
	admin.Post("/products", d.AdminHandler.CreateProduct)
	admin.Get("/products/:id", d.AdminHandler.Product)
	admin.Put("/products/:id", d.AdminHandler.UpdateProduct)
	admin.Delete("/products/:id", d.AdminHandler.DeleteProduct)
	admin.Get("/orders", d.AdminHandler.OrdersList)
	admin.Get("/orders/:id", d.AdminHandler.Order)
	admin.Post("/orders/:id/status", d.AdminHandler.UpdateOrderStatus)
	admin.Get("/users", d.AdminHandler.Users)

	app.Use(NotFound)
	return app
}
