package redirects

import (
	"log"
	"strings"
)

// Paths eligible as post-callback redirect targets. A requested destination
// must equal an entry or live below one (e.g. /settings/profile).
var allowlist = []string{
	"/",
	"/settings",
	"/dashboard",
	"/items",
	"/admin",
}

// Resolve validates a requested post-callback destination against the
// allowlist and returns it, or the given fallback when the destination is
// absent, absolute, protocol-relative or simply not allowlisted. The full-URL
// check runs before any normalization so attacker-controlled values like
// "//evil.com" never reach the allowlist matching.
func Resolve(from string, fallback string) string {
	if from == "" {
		return fallback
	}

	if strings.HasPrefix(from, "http://") ||
		strings.HasPrefix(from, "https://") ||
		strings.HasPrefix(from, "//") {
		log.Printf("redirects: rejected absolute destination %q", from)
		return fallback
	}

	path := from
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	for _, entry := range allowlist {
		if path == entry || strings.HasPrefix(path, entry+"/") {
			return path
		}
	}

	log.Printf("redirects: rejected destination %q (not allowlisted)", from)
	return fallback
}
