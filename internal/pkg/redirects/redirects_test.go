package redirects

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		fallback string
		want     string
	}{
		{name: "empty falls back", from: "", fallback: "/settings", want: "/settings"},
		{name: "https rejected", from: "https://evil.com/x", fallback: "/", want: "/"},
		{name: "http rejected", from: "http://evil.com", fallback: "/", want: "/"},
		{name: "protocol relative rejected", from: "//evil.com", fallback: "/", want: "/"},
		{name: "allowlisted root", from: "/", fallback: "/settings", want: "/"},
		{name: "allowlisted exact", from: "/settings", fallback: "/", want: "/settings"},
		{name: "allowlisted child", from: "/settings/profile", fallback: "/", want: "/settings/profile"},
		{name: "items child", from: "/items/42", fallback: "/", want: "/items/42"},
		{name: "unknown path falls back", from: "/unknown", fallback: "/", want: "/"},
		{name: "missing slash normalized", from: "dashboard", fallback: "/", want: "/dashboard"},
		{name: "prefix but not child", from: "/settingsevil", fallback: "/", want: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.from, tt.fallback); got != tt.want {
				t.Fatalf("Resolve(%q, %q) = %q, want %q", tt.from, tt.fallback, got, tt.want)
			}
		})
	}
}
