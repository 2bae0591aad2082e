package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ResHubApp/ResHub/internal/pkg/metrics/counter"
)

func HandleStart(c *fiber.Ctx) error {
	return render(c, "index", baseBind(c, "ResHub"))
}

// HandleResources is the default landing page after a WeChat sign-in.
func HandleResources(c *fiber.Ctx) error {
	return render(c, "resources", baseBind(c, "Resources"))
}

func HandleDashboard(c *fiber.Ctx) error {
	return render(c, "dashboard", baseBind(c, "Dashboard"))
}

func HandleItems(c *fiber.Ctx) error {
	return render(c, "items", baseBind(c, "Items"))
}

func HandleAdminDashboard(c *fiber.Ctx) error {
	bind := baseBind(c, "Admin")

	// Counters come from redis and may be absent in dev; the page renders
	// without them.
	if logins, err := counter.LoginOutcomes(); err == nil {
		bind["LoginOutcomes"] = logins
	}
	if links, err := counter.LinkOutcomes(); err == nil {
		bind["LinkOutcomes"] = links
	}

	return render(c, "admin", bind)
}
