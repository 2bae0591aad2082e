package usercontext

// Shared Locals/session keys used across controllers and middlewares
const (
	AuthKey          = "authenticated"
	KeyUserID        = "user_id"
	KeyUsername      = "username"
	KeyEmail         = "email"
	KeyIsAdmin       = "isAdmin"
	KeyAccessToken   = "access_token"
	KeyFromProtected = "from_protected"
)
