// Package wxauth implements the client side of the WeChat QR login and
// account-linking flow: the backend collaborator client, the failure
// taxonomy, the callback state machine and the QR widget loader.
package wxauth

// Intent says whether a flow authenticates a new session or attaches the
// WeChat identity to the current account. It is fixed for the lifetime of one
// flow attempt.
type Intent string

const (
	IntentLogin Intent = "login"
	IntentLink  Intent = "link"
)

// ParseIntent maps the callback route's "action" query parameter to an
// Intent. Anything but "link" defaults to login, matching the URL contract.
func ParseIntent(action string) Intent {
	if action == string(IntentLink) {
		return IntentLink
	}
	return IntentLogin
}

// StartParams are the provider parameters the backend hands out to render the
// QR widget. State is an opaque anti-forgery token with a short server-side
// TTL; it is consumed exactly once by the widget. The response never carries
// secrets.
type StartParams struct {
	AppID       string `json:"appid" validate:"required"`
	Scope       string `json:"scope" validate:"required"`
	RedirectURI string `json:"redirect_uri" validate:"required,uri"`
	State       string `json:"state" validate:"required"`
	ScriptURL   string `json:"wx_login_js_url" validate:"omitempty,url"`
}

// LinkRecord is the read-only copy of an established WeChat link. Its
// existence (non-nil) is the sole source of truth for "is linked".
type LinkRecord struct {
	OpenID    string `json:"openid"`
	UnionID   string `json:"unionid,omitempty"`
	Nickname  string `json:"nickname,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
