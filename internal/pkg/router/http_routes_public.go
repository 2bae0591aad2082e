package router

import (
	"github.com/ResHubApp/ResHub/app/controllers"
	"github.com/ResHubApp/ResHub/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// The OAuth landing route. WeChat redirects here with code/state; no
	// CSRF token can accompany a cross-site GET, so it stays outside the
	// protected group.
	app.Get("/wechat/callback", loggedInMiddleware, controllers.HandleWeChatCallback)

	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)
}
