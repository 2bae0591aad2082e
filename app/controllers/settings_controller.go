package controllers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/ResHubApp/ResHub/internal/pkg/i18n"
	"github.com/ResHubApp/ResHub/internal/pkg/usercontext"
	"github.com/ResHubApp/ResHub/internal/pkg/wxauth"
)

// HandleUserSettings renders the account settings page with the current
// WeChat link status. With ?link=1 and no existing link it also embeds the
// QR widget for the link flow.
func HandleUserSettings(c *fiber.Ctx) error {
	loc := localeFor(c)
	accessToken := usercontext.GetAccessToken(c)

	bind := baseBind(c, "Settings")
	bind["UnlinkConfirmText"] = i18n.T(loc, "auth.wechat.unlinkConfirm")

	user, err := identitySvc.CurrentUser(c.Context(), accessToken)
	if err != nil {
		log.Printf("[Settings] profile lookup failed: %v", err)
	} else {
		bind["User"] = user
		if user.IsWeChatOnly() {
			bind["WeChatOnlyWarning"] = i18n.T(loc, "auth.wechat.wechatOnlyAccount")
		}
	}

	record, err := identitySvc.LinkStatus(c.Context(), accessToken)
	if err != nil {
		bind["LinkStatusError"] = i18n.CategoryMessage(loc, wxauth.ClassifyErr(err))
	}
	bind["Linked"] = record != nil
	if record != nil {
		bind["Link"] = record
	}

	if c.Query("link") == "1" && record == nil {
		bindLinkWidget(c, loc, bind)
	}

	return render(c, "settings", bind)
}

func bindLinkWidget(c *fiber.Ctx, loc i18n.Locale, bind fiber.Map) {
	bind["Linking"] = true
	bind["LoadingText"] = i18n.T(loc, "auth.wechat.loginLoading")
	bind["WidgetErrorText"] = i18n.T(loc, "auth.wechat.providerUnavailable")

	if !wechatLoginEnabled() {
		bind["WidgetError"] = i18n.T(loc, "auth.wechat.featureDisabled")
		return
	}

	params, err := wechatBackend.Start(c.Context(), wxauth.IntentLink, "/settings")
	if err != nil {
		bind["WidgetError"] = startErrorMessage(loc, err)

		if notifier.ShouldShow(unavailableNoticeKey, unavailableNoticeCooldown) {
			log.Printf("[Settings] link start failed: %v", err)
		}
		return
	}

	bind["WidgetHTML"] = wxauth.WidgetSnippet(params, wechatContainerID)
	bind["WidgetContainerID"] = wechatContainerID
}

// HandleWeChatLinkStart opens the link flow from the settings page.
func HandleWeChatLinkStart(c *fiber.Ctx) error {
	loc := localeFor(c)
	accessToken := usercontext.GetAccessToken(c)

	if record, err := identitySvc.LinkStatus(c.Context(), accessToken); err == nil && record != nil {
		fm := fiber.Map{
			"type":    "info",
			"message": i18n.T(loc, "auth.wechat.alreadyLinkedSelf"),
		}
		return flash.WithInfo(c, fm).Redirect("/settings")
	}

	return c.Redirect("/settings?link=1")
}

// HandleWeChatUnlink removes the WeChat link. It requires the confirm field
// from the settings form and never clears the shown status optimistically:
// the page re-reads the backend's answer after the call.
func HandleWeChatUnlink(c *fiber.Ctx) error {
	loc := localeFor(c)
	accessToken := usercontext.GetAccessToken(c)

	if c.FormValue("confirm") != "yes" {
		fm := fiber.Map{
			"type":    "error",
			"message": i18n.T(loc, "auth.wechat.unlinkNotConfirmed"),
		}
		return flash.WithError(c, fm).Redirect("/settings")
	}

	if err := wechatBackend.Unlink(c.Context(), accessToken); err != nil {
		var apiErr *wxauth.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == fiber.StatusNotFound {
			// The link is already gone; refresh the cached status.
			identitySvc.Invalidate(accessToken)
		}

		// A provider outage repeats on every retry click; collapse the
		// toasts into one per cooldown window.
		if cat := wxauth.ClassifyErr(err); cat == wxauth.CategoryProviderUnavailable || cat == wxauth.CategoryNetworkError {
			if !notifier.ShouldShow(unavailableNoticeKey, unavailableNoticeCooldown) {
				return c.Redirect("/settings")
			}
			fm := fiber.Map{
				"type":    "error",
				"message": i18n.CategoryMessage(loc, cat),
			}
			return flash.WithError(c, fm).Redirect("/settings")
		}

		fm := fiber.Map{
			"type":    "error",
			"message": unlinkErrorMessage(loc, err),
		}
		return flash.WithError(c, fm).Redirect("/settings")
	}

	identitySvc.Invalidate(accessToken)

	fm := fiber.Map{
		"type":    "success",
		"message": i18n.T(loc, "auth.wechat.unlinkSuccess"),
	}
	return flash.WithSuccess(c, fm).Redirect("/settings")
}

func unlinkErrorMessage(loc i18n.Locale, err error) string {
	var apiErr *wxauth.APIError
	if errors.As(err, &apiErr) {
		switch {
		// Only the backend's sole-credential refusal reads as blocked; any
		// other 400 is a plain failure.
		case apiErr.StatusCode == fiber.StatusBadRequest &&
			strings.Contains(strings.ToLower(apiErr.Detail), "cannot unlink"):
			return i18n.T(loc, "auth.wechat.unlinkBlocked")
		case apiErr.StatusCode == fiber.StatusNotFound:
			return i18n.T(loc, "auth.wechat.linkNotFound")
		}
	}
	return i18n.T(loc, "errors.somethingWentWrong")
}
