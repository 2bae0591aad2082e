// Package i18n holds the fixed message catalog for the WeChat flow. Raw
// backend error text never reaches the user; every failure renders through
// one of these keys.
package i18n

import "github.com/ResHubApp/ResHub/internal/pkg/wxauth"

type Locale string

const (
	LocaleEN Locale = "en"
	LocaleZH Locale = "zh"
)

var catalogs = map[Locale]map[string]string{
	LocaleEN: {
		"auth.wechat.loggingIn":            "Signing in with WeChat",
		"auth.wechat.linkingAccount":       "Linking your WeChat account",
		"auth.wechat.pleaseWait":           "Please wait...",
		"auth.wechat.redirecting":          "Redirecting...",
		"auth.wechat.loginSuccess":         "Signed in successfully.",
		"auth.wechat.linkSuccess":          "WeChat account linked.",
		"auth.wechat.loginFailed":          "We could not complete the request.",
		"auth.wechat.scanQrCode":           "Scan the QR code with WeChat to continue.",
		"auth.wechat.loginLoading":         "Loading WeChat login...",
		"auth.wechat.stateError":           "The sign-in request expired or was tampered with. Please start again.",
		"auth.wechat.codeError":            "The authorization code is invalid or already used. Please start again.",
		"auth.wechat.providerUnavailable":  "WeChat is currently unavailable. Please try again later.",
		"auth.wechat.alreadyLinkedOther":   "This WeChat account is already linked to a different account.",
		"auth.wechat.alreadyLinkedSelf":    "This WeChat account is already linked.",
		"auth.wechat.networkError":         "Network problem while contacting the server. Please try again.",
		"auth.wechat.loginError":           "WeChat sign-in failed. Please try again.",
		"auth.wechat.linkConflictGuidance": "To link WeChat here, first unlink it from the other account or sign in with WeChat directly.",
		"auth.wechat.featureDisabled":      "WeChat sign-in is not enabled.",
		"auth.wechat.unlinkSuccess":        "WeChat account unlinked.",
		"auth.wechat.unlinkBlocked":        "Cannot unlink WeChat: it is this account's only sign-in method. Set an email and password first.",
		"auth.wechat.unlinkConfirm":        "Unlink WeChat from this account?",
		"auth.wechat.unlinkNotConfirmed":   "Unlinking was not confirmed.",
		"auth.wechat.linkNotFound":         "No WeChat account is linked.",
		"auth.wechat.wechatOnlyAccount":    "This account signs in with WeChat only. Add an email address before unlinking.",
		"common.error":                     "Error",
		"common.tryAgain":                  "Try again",
		"common.goHome":                    "Go home",
		"errors.somethingWentWrong":        "Something went wrong.",
	},
	LocaleZH: {
		"auth.wechat.loggingIn":            "正在使用微信登录",
		"auth.wechat.linkingAccount":       "正在绑定微信账号",
		"auth.wechat.pleaseWait":           "请稍候...",
		"auth.wechat.redirecting":          "正在跳转...",
		"auth.wechat.loginSuccess":         "登录成功。",
		"auth.wechat.linkSuccess":          "微信账号绑定成功。",
		"auth.wechat.loginFailed":          "请求未能完成。",
		"auth.wechat.scanQrCode":           "请使用微信扫描二维码。",
		"auth.wechat.loginLoading":         "正在加载微信登录...",
		"auth.wechat.stateError":           "登录请求已过期或被篡改，请重新开始。",
		"auth.wechat.codeError":            "授权码无效或已被使用，请重新开始。",
		"auth.wechat.providerUnavailable":  "微信服务暂不可用，请稍后再试。",
		"auth.wechat.alreadyLinkedOther":   "该微信账号已绑定到其他账号。",
		"auth.wechat.alreadyLinkedSelf":    "该微信账号已绑定。",
		"auth.wechat.networkError":         "网络异常，请重试。",
		"auth.wechat.loginError":           "微信登录失败，请重试。",
		"auth.wechat.linkConflictGuidance": "如需在此绑定微信，请先在另一账号上解除绑定，或直接使用微信登录。",
		"auth.wechat.featureDisabled":      "微信登录未开启。",
		"auth.wechat.unlinkSuccess":        "已解除微信绑定。",
		"auth.wechat.unlinkBlocked":        "无法解绑微信：这是该账号唯一的登录方式，请先设置邮箱和密码。",
		"auth.wechat.unlinkConfirm":        "确定要解除微信绑定吗？",
		"auth.wechat.unlinkNotConfirmed":   "未确认解绑操作。",
		"auth.wechat.linkNotFound":         "该账号未绑定微信。",
		"auth.wechat.wechatOnlyAccount":    "该账号仅支持微信登录，解绑前请先添加邮箱地址。",
		"common.error":                     "错误",
		"common.tryAgain":                  "重试",
		"common.goHome":                    "返回首页",
		"errors.somethingWentWrong":        "出错了。",
	},
}

// categoryKeys maps each failure category to its message key. The mapping is
// total: every category renders something.
var categoryKeys = map[wxauth.Category]string{
	wxauth.CategoryStateError:          "auth.wechat.stateError",
	wxauth.CategoryCodeError:           "auth.wechat.codeError",
	wxauth.CategoryProviderUnavailable: "auth.wechat.providerUnavailable",
	wxauth.CategoryAlreadyLinkedOther:  "auth.wechat.alreadyLinkedOther",
	wxauth.CategoryAlreadyLinkedSelf:   "auth.wechat.alreadyLinkedSelf",
	wxauth.CategoryNetworkError:        "auth.wechat.networkError",
	wxauth.CategoryUnknown:             "auth.wechat.loginError",
}

// T returns the message for key in the given locale, falling back to English,
// then to the key itself so a missing entry stays visible instead of blank.
func T(locale Locale, key string) string {
	if msgs, ok := catalogs[locale]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[LocaleEN][key]; ok {
		return msg
	}
	return key
}

// CategoryMessage renders the fixed localized message for a failure category.
func CategoryMessage(locale Locale, category wxauth.Category) string {
	key, ok := categoryKeys[category]
	if !ok {
		key = "auth.wechat.loginError"
	}
	return T(locale, key)
}

// FromHeader picks a supported locale from an Accept-Language value.
func FromHeader(acceptLanguage string) Locale {
	if len(acceptLanguage) >= 2 && acceptLanguage[:2] == "zh" {
		return LocaleZH
	}
	return LocaleEN
}
