package controllers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/ResHubApp/ResHub/internal/pkg/i18n"
	"github.com/ResHubApp/ResHub/internal/pkg/identity"
	"github.com/ResHubApp/ResHub/internal/pkg/metrics/counter"
	"github.com/ResHubApp/ResHub/internal/pkg/notify"
	"github.com/ResHubApp/ResHub/internal/pkg/session"
	"github.com/ResHubApp/ResHub/internal/pkg/token"
	"github.com/ResHubApp/ResHub/internal/pkg/usercontext"
	"github.com/ResHubApp/ResHub/internal/pkg/wxauth"
)

// sessionLifetime matches the session store's cookie expiration. A shorter
// access-token lifetime wins over it (see token.SessionTTL).
const sessionLifetime = time.Hour

var (
	wechatBackend wxauth.Backend
	identitySvc   *identity.Service
	notifier      = notify.Default
)

// InitializeWeChatController wires the auth backend client and the identity
// cache into the controller package. Called once at startup, and by tests
// with fakes. The notification limiter restarts with it so repeated inits
// (tests) never share cooldown windows.
func InitializeWeChatController(backend wxauth.Backend, svc *identity.Service) {
	wechatBackend = backend
	identitySvc = svc
	notifier = notify.NewLimiter(time.Now)
}

// HandleWeChatCallback is the landing route of the WeChat OAuth redirect.
// It runs the code/state exchange exactly once and renders a terminal
// success or error page; the success page navigates onward after a short
// fixed delay.
func HandleWeChatCallback(c *fiber.Ctx) error {
	loc := localeFor(c)
	intent := wxauth.ParseIntent(c.Query("action"))
	code := c.Query("code")
	state := c.Query("state")
	from := c.Query("from")

	// Linking only makes sense inside an authenticated session.
	if intent == wxauth.IntentLink && !isLoggedIn(c) {
		fm := fiber.Map{
			"type":    "error",
			"message": i18n.T(loc, "auth.wechat.loginError"),
		}
		return flash.WithError(c, fm).Redirect("/login")
	}

	flow := wxauth.NewFlow(intent)

	var accessToken string
	flow.Run(c.Context(), code, state, from, func(ctx context.Context) error {
		if intent == wxauth.IntentLink {
			_, err := wechatBackend.ConfirmLink(ctx, usercontext.GetAccessToken(c), code, state)
			return err
		}

		tok, err := wechatBackend.CompleteLogin(ctx, code, state)
		if err != nil {
			return err
		}
		accessToken = tok
		return nil
	})

	if flow.State() == wxauth.StateSuccess {
		recordOutcome(intent, "success")
		return renderCallbackSuccess(c, loc, flow, accessToken)
	}

	recordOutcome(intent, string(flow.Category()))
	return renderCallbackError(c, loc, flow)
}

func recordOutcome(intent wxauth.Intent, outcome string) {
	var err error
	if intent == wxauth.IntentLink {
		err = counter.AddLinkOutcome(outcome)
	} else {
		err = counter.AddLoginOutcome(outcome)
	}
	if err != nil {
		log.Printf("[WeChat] counter update failed: %v", err)
	}
}

func renderCallbackSuccess(c *fiber.Ctx, loc i18n.Locale, flow *wxauth.Flow, accessToken string) error {
	titleKey := "auth.wechat.loggingIn"
	messageKey := "auth.wechat.loginSuccess"
	if flow.Intent() == wxauth.IntentLink {
		titleKey = "auth.wechat.linkingAccount"
		messageKey = "auth.wechat.linkSuccess"
	}

	if flow.Intent() == wxauth.IntentLogin {
		identitySvc.Invalidate(accessToken)
		if err := establishSession(c, accessToken); err != nil {
			log.Printf("[WeChat] session setup after login failed: %v", err)

			fm := fiber.Map{
				"type":    "error",
				"message": i18n.T(loc, "errors.somethingWentWrong"),
			}
			return flash.WithError(c, fm).Redirect("/login")
		}
	} else {
		// Linked state changed; drop the cached copy so /settings re-reads it.
		identitySvc.Invalidate(usercontext.GetAccessToken(c))
	}

	bind := baseBind(c, i18n.T(loc, titleKey))
	bind["Success"] = true
	bind["Message"] = i18n.T(loc, messageKey)
	bind["Redirecting"] = i18n.T(loc, "auth.wechat.redirecting")
	bind["RedirectTo"] = flow.RedirectTo()
	bind["RedirectDelayMS"] = int(wxauth.SuccessRedirectDelay / time.Millisecond)

	return render(c, "wechat_callback", bind)
}

func renderCallbackError(c *fiber.Ctx, loc i18n.Locale, flow *wxauth.Flow) error {
	bind := baseBind(c, i18n.T(loc, "common.error"))
	bind["Success"] = false
	bind["Message"] = i18n.CategoryMessage(loc, flow.Category())
	bind["RetryPath"] = flow.RetryPath()
	bind["TryAgain"] = i18n.T(loc, "common.tryAgain")
	if flow.Category() == wxauth.CategoryAlreadyLinkedOther {
		bind["Guidance"] = i18n.T(loc, "auth.wechat.linkConflictGuidance")
	}

	return render(c, "wechat_callback", bind)
}

// establishSession turns a fresh backend access token into a logged-in
// session. Profile data is best effort: a failed lookup still leaves a
// working session behind.
func establishSession(c *fiber.Ctx, accessToken string) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}

	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyAccessToken, accessToken)

	if sub, expiresAt, err := token.Peek(accessToken); err == nil {
		sess.Set(usercontext.KeyUserID, sub)
		sess.SetExpiry(token.SessionTTL(sessionLifetime, expiresAt, time.Now()))
	}

	if user, err := identitySvc.CurrentUser(c.Context(), accessToken); err == nil {
		sess.Set(usercontext.KeyUserID, user.ID)
		sess.Set(usercontext.KeyUsername, user.DisplayName())
		sess.Set(usercontext.KeyEmail, user.Email)
		sess.Set(usercontext.KeyIsAdmin, user.IsSuperuser)
	} else {
		log.Printf("[WeChat] could not load profile after login: %v", err)
	}

	return sess.Save()
}
