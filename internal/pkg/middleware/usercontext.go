package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ResHubApp/ResHub/internal/pkg/session"
	"github.com/ResHubApp/ResHub/internal/pkg/usercontext"
)

// UserContextMiddleware sets up the complete user context for every request
// This centralizes user session handling and eliminates code duplication
func UserContextMiddleware(c *fiber.Ctx) error {
	anonymous := func() error {
		c.Locals("USER_CONTEXT", usercontext.UserContext{
			IsLoggedIn: false,
			IsAdmin:    false,
		})
		c.Locals(usercontext.KeyFromProtected, false)
		c.Locals(usercontext.KeyIsAdmin, false)
		return c.Next()
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return anonymous()
	}

	// The backend access token is the session's proof of login.
	token := sess.Get(usercontext.KeyAccessToken)
	tokenStr, ok := token.(string)
	if !ok || tokenStr == "" {
		return anonymous()
	}

	userID, _ := sess.Get(usercontext.KeyUserID).(string)
	username, _ := sess.Get(usercontext.KeyUsername).(string)
	email, _ := sess.Get(usercontext.KeyEmail).(string)
	isAdmin, _ := sess.Get(usercontext.KeyIsAdmin).(bool)

	userCtx := usercontext.UserContext{
		UserID:      userID,
		Username:    username,
		Email:       email,
		IsLoggedIn:  true,
		IsAdmin:     isAdmin,
		AccessToken: tokenStr,
	}
	c.Locals("USER_CONTEXT", userCtx)

	c.Locals(usercontext.KeyFromProtected, true)
	c.Locals(usercontext.KeyUsername, username)
	c.Locals(usercontext.KeyUserID, userID)
	c.Locals(usercontext.KeyIsAdmin, isAdmin)

	return c.Next()
}
