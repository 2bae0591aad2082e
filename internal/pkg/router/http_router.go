package router

import (
	"github.com/ResHubApp/ResHub/app/controllers"
	"github.com/ResHubApp/ResHub/internal/pkg/cache"
	"github.com/ResHubApp/ResHub/internal/pkg/identity"
	"github.com/ResHubApp/ResHub/internal/pkg/middleware"
	"github.com/ResHubApp/ResHub/internal/pkg/session"
	"github.com/ResHubApp/ResHub/internal/pkg/wxauth"

	"github.com/gofiber/fiber/v2"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Wire the auth backend client and the identity cache into the
	// controllers once, before any route can fire.
	backend := wxauth.NewClientFromEnv()
	controllers.InitializeWeChatController(backend, identity.NewService(backend, cache.GetStore()))

	h.registerPublicRoutes(app)
	h.registerAdminRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func loggedInMiddleware(c *fiber.Ctx) error {
	// UserContextMiddleware already set all user context
	return c.Next()
}
