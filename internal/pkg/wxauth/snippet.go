package wxauth

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/url"
)

// WidgetSnippet renders the browser half of the widget loader as an inline
// bootstrap script for the views: the same singleton check, script injection,
// instantiation and iframe height fixup the Loader models, executed in the
// page. The provider script is loaded at most once per page regardless of how
// many widgets render.
func WidgetSnippet(params *StartParams, containerID string) template.HTML {
	scriptURL := params.ScriptURL
	if scriptURL == "" {
		scriptURL = DefaultScriptURL
	}

	cfg := WidgetConfig{
		ContainerID:  containerID,
		AppID:        params.AppID,
		Scope:        params.Scope,
		RedirectURI:  url.QueryEscape(params.RedirectURI),
		State:        params.State,
		SelfRedirect: false,
		Style:        "black",
	}
	// json.Marshal escapes <, > and & so the payload is safe inside a
	// script element.
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return ""
	}
	srcJSON, _ := json.Marshal(scriptURL)

	js := fmt.Sprintf(`<script>
(function () {
  var cfg = %s;
  var src = %s;
  function fixHeight() {
    var el = document.getElementById(cfg.id);
    var frame = el && el.querySelector("iframe");
    if (frame) {
      frame.style.height = "%dpx";
      frame.setAttribute("height", "%d");
    }
  }
  function mount() {
    var el = document.getElementById(cfg.id);
    if (!el || !window.WxLogin) { return; }
    el.innerHTML = "";
    try {
      new window.WxLogin(cfg);
    } catch (e) {
      el.textContent = el.getAttribute("data-error-text") || "";
      return;
    }
    setTimeout(fixHeight, 0);
  }
  if (window.WxLogin) {
    mount();
    return;
  }
  if (!document.querySelector("script[data-wxlogin]")) {
    var s = document.createElement("script");
    s.src = src;
    s.async = true;
    s.setAttribute("data-wxlogin", "1");
    s.onload = mount;
    s.onerror = function () {
      var el = document.getElementById(cfg.id);
      if (el) { el.textContent = el.getAttribute("data-error-text") || ""; }
    };
    document.head.appendChild(s);
  } else {
    document.querySelector("script[data-wxlogin]").addEventListener("load", mount);
  }
})();
</script>`, cfgJSON, srcJSON, widgetIframeHeight, widgetIframeHeight)

	return template.HTML(js)
}
