package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/ResHubApp/ResHub/internal/pkg/env"
	"github.com/ResHubApp/ResHub/internal/pkg/i18n"
	"github.com/ResHubApp/ResHub/internal/pkg/usercontext"
)

func isLoggedIn(c *fiber.Ctx) bool {
	return usercontext.IsLoggedIn(c)
}

func localeFor(c *fiber.Ctx) i18n.Locale {
	return i18n.FromHeader(c.Get(fiber.HeaderAcceptLanguage))
}

// baseBind collects the values every page template expects. Page handlers
// add their own keys on top.
func baseBind(c *fiber.Ctx, title string) fiber.Map {
	ctx := usercontext.GetUserContext(c)

	csrfToken, _ := c.Locals("csrf").(string)

	return fiber.Map{
		"CSRFToken":  csrfToken,
		"Title":      title,
		"IsLoggedIn": ctx.IsLoggedIn,
		"IsAdmin":    ctx.IsAdmin,
		"Username":   ctx.Username,
		"Flash":      flash.Get(c),
		"IsDev":      env.IsDev(),
	}
}

func render(c *fiber.Ctx, view string, bind fiber.Map) error {
	return c.Render(view, bind, "layouts/main")
}
