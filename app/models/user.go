package models

import "strings"

// User is the read-only copy of the account as the auth backend reports it.
// The backend owns the record; this side only caches and displays it.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
}

func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

// IsWeChatOnly reports whether this account was created by WeChat login and
// has no other credential yet. Derived from the email alone.
func (u *User) IsWeChatOnly() bool {
	return IsWeChatPlaceholderEmail(u.Email)
}

// IsWeChatPlaceholderEmail matches the backend's placeholder pattern
// (wechat_{uuid}@placeholder.local) strictly, so legitimate addresses never
// trip the WeChat-only warning.
func IsWeChatPlaceholderEmail(email string) bool {
	return email != "" &&
		strings.HasPrefix(email, "wechat_") &&
		strings.HasSuffix(email, "@placeholder.local")
}
