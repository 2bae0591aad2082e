package wxauth

import (
	"net/url"
)

// DefaultScriptURL is the provider-hosted QR rendering script, used when the
// backend's start response does not name one.
const DefaultScriptURL = "https://res.wx.qq.com/connect/zh_CN/htmledition/js/wxLogin.js"

// widgetIframeHeight is the post-mount height fixup in pixels. The provider's
// default markup under-sizes the iframe and cuts off the QR code.
const widgetIframeHeight = 300

// ScriptRegistry tracks the provider script as a page-global singleton.
// Load state lives per page, not per loader, so two widgets on one page never
// inject the script twice.
type ScriptRegistry interface {
	IsLoaded() bool
	Load(url string, onDone func(ok bool))
}

// Container is the mount target for the QR iframe.
type Container interface {
	Clear()
	Instantiate(cfg WidgetConfig) error
	FixIframeHeight(px int)
}

// WidgetConfig is passed to the provider widget verbatim. RedirectURI is
// URL-encoded; everything else is the backend's start response unchanged.
type WidgetConfig struct {
	ContainerID  string `json:"id"`
	AppID        string `json:"appid"`
	Scope        string `json:"scope"`
	RedirectURI  string `json:"redirect_uri"`
	State        string `json:"state"`
	SelfRedirect bool   `json:"self_redirect"`
	Style        string `json:"style"`

	// OnReady is the widget's own readiness callback. Not-ready routes to
	// the loader's failure path.
	OnReady func(isReady bool) `json:"-"`
}

// Loader mounts the provider QR widget once both the backend start response
// and the script load have completed, in whichever order they resolve. Script
// load failure, instantiation errors and the widget's own not-ready signal
// all collapse into a single onReady(false).
//
// All methods run on one goroutine (the page's event flow); there is no
// locking by contract.
type Loader struct {
	reg         ScriptRegistry
	container   Container
	containerID string
	onReady     func(ok bool)

	params        *StartParams
	loadRequested bool
	scriptLoaded  bool
	mounted       bool
	succeeded     bool
	failed        bool
}

func NewLoader(reg ScriptRegistry, container Container, containerID string, onReady func(ok bool)) *Loader {
	return &Loader{
		reg:         reg,
		container:   container,
		containerID: containerID,
		onReady:     onReady,
	}
}

// Start feeds the loader a complete start response. It requests the script
// load if nothing did so yet and mounts as soon as both sides are ready.
func (l *Loader) Start(params *StartParams) {
	if l.failed || l.mounted {
		return
	}
	l.params = params

	if !l.loadRequested {
		scriptURL := params.ScriptURL
		if scriptURL == "" {
			scriptURL = DefaultScriptURL
		}
		l.LoadScript(scriptURL)
		return
	}
	l.tryMount()
}

// LoadScript requests the provider script ahead of the start response, the
// way the settings page warms the script while the backend call is in flight.
// Safe to call once per loader; the registry guards the page-level singleton.
func (l *Loader) LoadScript(scriptURL string) {
	if l.failed || l.loadRequested {
		return
	}
	l.loadRequested = true

	if l.reg.IsLoaded() {
		l.scriptLoaded = true
		l.tryMount()
		return
	}

	l.reg.Load(scriptURL, func(ok bool) {
		if !ok {
			l.fail()
			return
		}
		l.scriptLoaded = true
		l.tryMount()
	})
}

func (l *Loader) tryMount() {
	if l.mounted || l.failed || l.params == nil || !l.scriptLoaded {
		return
	}
	l.mounted = true

	l.container.Clear()
	cfg := WidgetConfig{
		ContainerID:  l.containerID,
		AppID:        l.params.AppID,
		Scope:        l.params.Scope,
		RedirectURI:  url.QueryEscape(l.params.RedirectURI),
		State:        l.params.State,
		SelfRedirect: false,
		Style:        "black",
		OnReady: func(isReady bool) {
			if !isReady {
				l.fail()
			}
		},
	}

	if err := l.container.Instantiate(cfg); err != nil {
		l.fail()
		return
	}
	l.container.FixIframeHeight(widgetIframeHeight)
	l.succeed()
}

func (l *Loader) succeed() {
	if l.succeeded || l.failed {
		return
	}
	l.succeeded = true
	l.onReady(true)
}

// fail reports ProviderUnavailable exactly once. The widget's own not-ready
// signal can arrive after a successful mount and still must surface.
func (l *Loader) fail() {
	if l.failed {
		return
	}
	l.failed = true
	l.onReady(false)
}
