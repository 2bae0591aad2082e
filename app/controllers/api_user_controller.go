package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ResHubApp/ResHub/internal/pkg/usercontext"
	"github.com/ResHubApp/ResHub/internal/pkg/wxauth"
)

// HandleAPICurrentUser returns the authenticated user's profile as the auth
// backend reports it.
func HandleAPICurrentUser(c *fiber.Ctx) error {
	accessToken := usercontext.GetAccessToken(c)

	user, err := identitySvc.CurrentUser(c.Context(), accessToken)
	if err != nil {
		return apiErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// HandleAPIWeChatStatus returns the WeChat link status for the
// authenticated user. An unlinked account answers {"linked": false}.
func HandleAPIWeChatStatus(c *fiber.Ctx) error {
	accessToken := usercontext.GetAccessToken(c)

	record, err := identitySvc.LinkStatus(c.Context(), accessToken)
	if err != nil {
		return apiErrorResponse(c, err)
	}

	if record == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"linked": false})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"linked":     true,
		"nickname":   record.Nickname,
		"avatar_url": record.AvatarURL,
	})
}

// apiErrorResponse translates a backend failure into a JSON error without
// leaking the raw detail string.
func apiErrorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusBadGateway
	if wxauth.ClassifyErr(err) == wxauth.CategoryNetworkError {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"error":    "upstream_error",
		"category": string(wxauth.ClassifyErr(err)),
	})
}
