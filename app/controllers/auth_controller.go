package controllers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/ResHubApp/ResHub/internal/pkg/env"
	"github.com/ResHubApp/ResHub/internal/pkg/i18n"
	"github.com/ResHubApp/ResHub/internal/pkg/session"
	"github.com/ResHubApp/ResHub/internal/pkg/wxauth"
)

const (
	wechatEnabledEnv  = "WECHAT_LOGIN_ENABLED"
	wechatContainerID = "wechat-qr-container"

	// Repeated provider failures collapse into one notification per window.
	unavailableNoticeKey      = "wechat:provider-unavailable"
	unavailableNoticeCooldown = 30 * time.Second
)

func wechatLoginEnabled() bool {
	return env.GetEnv(wechatEnabledEnv, "true") != "false"
}

// HandleAuthLogin renders the login page. When WeChat login is enabled it
// asks the backend for fresh start parameters and embeds the QR widget;
// otherwise, or when the provider is down, it shows a fixed message instead.
func HandleAuthLogin(c *fiber.Ctx) error {
	if isLoggedIn(c) {
		return c.Redirect("/")
	}

	loc := localeFor(c)
	bind := baseBind(c, i18n.T(loc, "auth.wechat.loggingIn"))
	bind["ScanPrompt"] = i18n.T(loc, "auth.wechat.scanQrCode")
	bind["LoadingText"] = i18n.T(loc, "auth.wechat.loginLoading")
	bind["WidgetErrorText"] = i18n.T(loc, "auth.wechat.providerUnavailable")

	if !wechatLoginEnabled() {
		bind["WidgetError"] = i18n.T(loc, "auth.wechat.featureDisabled")
		return render(c, "login", bind)
	}

	params, err := wechatBackend.Start(c.Context(), wxauth.IntentLogin, c.Query("from"))
	if err != nil {
		bind["WidgetError"] = startErrorMessage(loc, err)

		if notifier.ShouldShow(unavailableNoticeKey, unavailableNoticeCooldown) {
			log.Printf("[WeChat] login start failed: %v", err)
		}
		return render(c, "login", bind)
	}

	bind["WidgetHTML"] = wxauth.WidgetSnippet(params, wechatContainerID)
	bind["WidgetContainerID"] = wechatContainerID

	return render(c, "login", bind)
}

// startErrorMessage maps a failed start call to its page message. The
// backend answers 403 when the feature is switched off and 404 when the
// route is not deployed; both read as "not enabled" to the user.
func startErrorMessage(loc i18n.Locale, err error) string {
	var apiErr *wxauth.APIError
	if errors.As(err, &apiErr) && (apiErr.StatusCode == fiber.StatusForbidden || apiErr.StatusCode == fiber.StatusNotFound) {
		return i18n.T(loc, "auth.wechat.featureDisabled")
	}
	return i18n.CategoryMessage(loc, wxauth.ClassifyErr(err))
}

func HandleAuthLogout(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = "logged out (no sess)"

		return flash.WithError(c, fm).Redirect("/login")
	}

	err = sess.Destroy()
	if err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)

		return flash.WithError(c, fm).Redirect("/login")
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Bye bye!",
	}

	return flash.WithSuccess(c, fm).Redirect("/login")
}
