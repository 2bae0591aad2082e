package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ResHubApp/ResHub/app/models"
	"github.com/ResHubApp/ResHub/internal/pkg/cache"
	"github.com/ResHubApp/ResHub/internal/pkg/identity"
	"github.com/ResHubApp/ResHub/internal/pkg/middleware"
	"github.com/ResHubApp/ResHub/internal/pkg/session"
	"github.com/ResHubApp/ResHub/internal/pkg/usercontext"
	"github.com/ResHubApp/ResHub/internal/pkg/wxauth"
)

// fakeAuthBackend lets each test script the backend's answers and count
// calls. Nil funcs fall back to benign defaults.
type fakeAuthBackend struct {
	startFn       func(ctx context.Context, intent wxauth.Intent, returnTo string) (*wxauth.StartParams, error)
	completeFn    func(ctx context.Context, code, state string) (string, error)
	confirmFn     func(ctx context.Context, accessToken, code, state string) (*wxauth.LinkRecord, error)
	statusFn      func(ctx context.Context, accessToken string) (*wxauth.LinkRecord, error)
	unlinkFn      func(ctx context.Context, accessToken string) error
	currentUserFn func(ctx context.Context, accessToken string) (*models.User, error)

	startCalls    int
	completeCalls int
	confirmCalls  int
	unlinkCalls   int
}

func (f *fakeAuthBackend) Start(ctx context.Context, intent wxauth.Intent, returnTo string) (*wxauth.StartParams, error) {
	f.startCalls++
	if f.startFn != nil {
		return f.startFn(ctx, intent, returnTo)
	}
	return &wxauth.StartParams{
		AppID:       "wx_test_appid",
		Scope:       "snsapi_login",
		RedirectURI: "https://app.example.com/wechat/callback",
		State:       "st_test",
	}, nil
}

func (f *fakeAuthBackend) CompleteLogin(ctx context.Context, code, state string) (string, error) {
	f.completeCalls++
	if f.completeFn != nil {
		return f.completeFn(ctx, code, state)
	}
	return "tok-login", nil
}

func (f *fakeAuthBackend) ConfirmLink(ctx context.Context, accessToken, code, state string) (*wxauth.LinkRecord, error) {
	f.confirmCalls++
	if f.confirmFn != nil {
		return f.confirmFn(ctx, accessToken, code, state)
	}
	return &wxauth.LinkRecord{OpenID: "openid-1"}, nil
}

func (f *fakeAuthBackend) LinkStatus(ctx context.Context, accessToken string) (*wxauth.LinkRecord, error) {
	if f.statusFn != nil {
		return f.statusFn(ctx, accessToken)
	}
	return nil, nil
}

func (f *fakeAuthBackend) Unlink(ctx context.Context, accessToken string) error {
	f.unlinkCalls++
	if f.unlinkFn != nil {
		return f.unlinkFn(ctx, accessToken)
	}
	return nil
}

func (f *fakeAuthBackend) CurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	if f.currentUserFn != nil {
		return f.currentUserFn(ctx, accessToken)
	}
	return &models.User{ID: "u1", Email: "user@example.com", FullName: "Test User", IsActive: true}, nil
}

// newControllerTestApp builds a fiber app with the production view engine,
// session store and routes, backed by the given fake.
func newControllerTestApp(t *testing.T, backend *fakeAuthBackend) *fiber.App {
	t.Helper()

	t.Setenv("CACHE_DRIVER", "memory")
	cache.SetupCache()

	app := fiber.New(fiber.Config{
		Views: html.New("../../views", ".html"),
	})

	session.NewSessionStore()
	app.Use(middleware.UserContextMiddleware)

	InitializeWeChatController(backend, identity.NewService(backend, cache.GetStore()))

	app.Get("/", HandleStart)
	app.Get("/login", HandleAuthLogin)
	app.Post("/logout", middleware.RequireAuth, HandleAuthLogout)
	app.Get("/wechat/callback", HandleWeChatCallback)
	app.Get("/settings", middleware.RequireAuth, HandleUserSettings)
	app.Post("/settings/wechat/link", middleware.RequireAuth, HandleWeChatLinkStart)
	app.Post("/settings/wechat/unlink", middleware.RequireAuth, HandleWeChatUnlink)
	app.Get("/api/v1/users/me", middleware.RequireAPISessionAuth, HandleAPICurrentUser)
	app.Get("/api/v1/users/me/wechat", middleware.RequireAPISessionAuth, HandleAPIWeChatStatus)

	// Test-only login that plants a session the way the callback does.
	app.Post("/test/login", func(c *fiber.Ctx) error {
		sess, err := session.GetSessionStore().Get(c)
		if err != nil {
			return err
		}
		sess.Set(usercontext.AuthKey, true)
		sess.Set(usercontext.KeyAccessToken, "tok-session")
		sess.Set(usercontext.KeyUserID, "u1")
		sess.Set(usercontext.KeyUsername, "Test User")
		if err := sess.Save(); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	return app
}

// loginSession returns the session cookie of a freshly logged-in user.
func loginSession(t *testing.T, app *fiber.App) *http.Cookie {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodPost, "/test/login", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	for _, ck := range resp.Cookies() {
		if ck.Name == "session_id" {
			return ck
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func bodyOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestWeChatCallbackLoginSuccess(t *testing.T) {
	backend := &fakeAuthBackend{}
	app := newControllerTestApp(t, backend)

	req := httptest.NewRequest(fiber.MethodGet, "/wechat/callback?code=c1&state=s1", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := bodyOf(t, resp)
	assert.Contains(t, body, "Signed in successfully.")
	assert.Contains(t, body, "/resources")
	assert.Equal(t, 1, backend.completeCalls)

	// The response carries a logged-in session.
	var sessionCookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == "session_id" {
			sessionCookie = ck
		}
	}
	require.NotNil(t, sessionCookie)

	req = httptest.NewRequest(fiber.MethodGet, "/settings", nil)
	req.AddCookie(sessionCookie)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestWeChatCallbackMissingCode(t *testing.T) {
	backend := &fakeAuthBackend{}
	app := newControllerTestApp(t, backend)

	req := httptest.NewRequest(fiber.MethodGet, "/wechat/callback?state=s1", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body := bodyOf(t, resp)
	assert.Contains(t, body, "The authorization code is invalid or already used.")
	assert.Zero(t, backend.completeCalls)
}

func TestWeChatCallbackMissingState(t *testing.T) {
	backend := &fakeAuthBackend{}
	app := newControllerTestApp(t, backend)

	for _, target := range []string{"/wechat/callback?code=c1", "/wechat/callback"} {
		req := httptest.NewRequest(fiber.MethodGet, target, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)

		body := bodyOf(t, resp)
		assert.Contains(t, body, "expired or was tampered with", target)
	}
	assert.Zero(t, backend.completeCalls)
}

func TestWeChatCallbackLoginFailure(t *testing.T) {
	backend := &fakeAuthBackend{
		completeFn: func(ctx context.Context, code, state string) (string, error) {
			return "", &wxauth.APIError{StatusCode: fiber.StatusBadRequest, Detail: "Invalid state token"}
		},
	}
	app := newControllerTestApp(t, backend)

	req := httptest.NewRequest(fiber.MethodGet, "/wechat/callback?code=c1&state=bad", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body := bodyOf(t, resp)
	assert.Contains(t, body, "expired or was tampered with")
	assert.Contains(t, body, `href="/login"`)
}

func TestWeChatCallbackHostileFromRejected(t *testing.T) {
	backend := &fakeAuthBackend{}
	app := newControllerTestApp(t, backend)

	req := httptest.NewRequest(fiber.MethodGet, "/wechat/callback?code=c1&state=s1&from=https%3A%2F%2Fevil.example.com%2F", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body := bodyOf(t, resp)
	assert.NotContains(t, body, "evil.example.com")
	assert.Contains(t, body, "/resources")
}

func TestWeChatCallbackLinkRequiresLogin(t *testing.T) {
	backend := &fakeAuthBackend{}
	app := newControllerTestApp(t, backend)

	req := httptest.NewRequest(fiber.MethodGet, "/wechat/callback?action=link&code=c1&state=s1", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Zero(t, backend.confirmCalls)
}

func TestWeChatCallbackLinkSuccess(t *testing.T) {
	backend := &fakeAuthBackend{}
	app := newControllerTestApp(t, backend)
	cookie := loginSession(t, app)

	req := httptest.NewRequest(fiber.MethodGet, "/wechat/callback?action=link&code=c1&state=s1&from=%2Fsettings", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body := bodyOf(t, resp)
	assert.Contains(t, body, "WeChat account linked.")
	assert.Contains(t, body, "/settings")
	assert.Equal(t, 1, backend.confirmCalls)
	assert.Zero(t, backend.completeCalls)
}

func TestWeChatCallbackLinkConflict(t *testing.T) {
	backend := &fakeAuthBackend{
		confirmFn: func(ctx context.Context, accessToken, code, state string) (*wxauth.LinkRecord, error) {
			return nil, &wxauth.APIError{
				StatusCode: fiber.StatusConflict,
				Detail:     "This WeChat account is already linked to another user",
			}
		},
	}
	app := newControllerTestApp(t, backend)
	cookie := loginSession(t, app)

	req := httptest.NewRequest(fiber.MethodGet, "/wechat/callback?action=link&code=c1&state=s1", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body := bodyOf(t, resp)
	assert.Contains(t, body, "already linked to a different account")
	assert.Contains(t, body, "first unlink it from the other account")
	assert.Contains(t, body, `href="/settings"`)
}

func TestWeChatCallbackChineseMessages(t *testing.T) {
	backend := &fakeAuthBackend{}
	app := newControllerTestApp(t, backend)

	req := httptest.NewRequest(fiber.MethodGet, "/wechat/callback?code=c1", nil)
	req.Header.Set(fiber.HeaderAcceptLanguage, "zh-CN,zh;q=0.9")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body := bodyOf(t, resp)
	assert.Contains(t, body, "登录请求已过期或被篡改")
}
