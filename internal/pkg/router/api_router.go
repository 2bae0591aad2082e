package router

import (
	"github.com/ResHubApp/ResHub/app/controllers"
	"github.com/ResHubApp/ResHub/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// Session-authenticated JSON endpoints used by page scripts.
	v1 := api.Group("/v1", middleware.RequireAPISessionAuth)
	v1.Get("/users/me", controllers.HandleAPICurrentUser)
	v1.Get("/users/me/wechat", controllers.HandleAPIWeChatStatus)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
