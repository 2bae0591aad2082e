package wxauth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWidgetSnippetEmbedsConfig(t *testing.T) {
	html := string(WidgetSnippet(testParams(), "wechat-qr-container"))

	assert.Contains(t, html, `"id":"wechat-qr-container"`)
	assert.Contains(t, html, `"appid":"wx1234567890"`)
	assert.Contains(t, html, `"scope":"snsapi_login"`)
	assert.Contains(t, html, `"state":"st4te-t0ken"`)
	// redirect_uri must arrive URL-encoded at the provider.
	assert.Contains(t, html, "https%3A%2F%2Fapp.example.com")
	assert.Contains(t, html, "300")
}

func TestWidgetSnippetFallsBackToDefaultScriptURL(t *testing.T) {
	p := testParams()
	p.ScriptURL = ""
	html := string(WidgetSnippet(p, "qr"))

	assert.Contains(t, html, DefaultScriptURL)
}

func TestWidgetSnippetIsScriptSafe(t *testing.T) {
	p := testParams()
	p.State = `</script><script>alert(1)`
	html := string(WidgetSnippet(p, "qr"))

	assert.False(t, strings.Contains(html, "</script><script>alert"),
		"state token must not break out of the script element")
}
