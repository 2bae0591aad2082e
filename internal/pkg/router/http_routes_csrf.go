package router

import (
	"strings"
	"time"

	"github.com/ResHubApp/ResHub/app/controllers"
	"github.com/ResHubApp/ResHub/internal/pkg/env"
	"github.com/ResHubApp/ResHub/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Get("/", loggedInMiddleware, controllers.HandleStart)
	group.Get("/login", loggedInMiddleware, controllers.HandleAuthLogin)

	group.Get("/resources", middleware.RequireAuth, controllers.HandleResources)
	group.Get("/dashboard", middleware.RequireAuth, controllers.HandleDashboard)
	group.Get("/items", middleware.RequireAuth, controllers.HandleItems)

	// Account settings + WeChat link management
	group.Get("/settings", middleware.RequireAuth, controllers.HandleUserSettings)
	group.Post("/settings/wechat/link", middleware.RequireAuth, controllers.HandleWeChatLinkStart)
	group.Post("/settings/wechat/unlink", middleware.RequireAuth, controllers.HandleWeChatUnlink)
}
