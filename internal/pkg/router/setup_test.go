package router

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Router = (*HttpRouter)(nil)
	_ Router = (*ApiRouter)(nil)
)

func TestInstallRouterRegistersRoutes(t *testing.T) {
	t.Setenv("CACHE_DRIVER", "memory")

	app := fiber.New()
	InstallRouter(app)

	registered := make(map[string]bool)
	for _, routes := range app.Stack() {
		for _, route := range routes {
			registered[route.Method+" "+route.Path] = true
		}
	}

	for _, want := range []string{
		"GET /wechat/callback",
		"GET /login",
		"POST /logout",
		"GET /settings",
		"POST /settings/wechat/link",
		"POST /settings/wechat/unlink",
		"GET /api/v1/users/me",
		"GET /api/v1/users/me/wechat",
	} {
		assert.True(t, registered[want], "route %s not registered", want)
	}

	// Group roots may register with or without the trailing slash.
	assert.True(t, registered["GET /admin"] || registered["GET /admin/"], "admin route not registered")

	require.NotEmpty(t, app.Stack())
}
