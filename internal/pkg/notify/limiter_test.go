package notify

import (
	"testing"
	"time"
)

func TestLimiterCooldownWindow(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	l := NewLimiter(func() time.Time { return now })

	if !l.ShouldShow("k", 2*time.Second) {
		t.Fatalf("first call should be allowed")
	}

	now = base.Add(500 * time.Millisecond)
	if l.ShouldShow("k", 2*time.Second) {
		t.Fatalf("call within cooldown should be suppressed")
	}

	now = base.Add(2100 * time.Millisecond)
	if !l.ShouldShow("k", 2*time.Second) {
		t.Fatalf("call after cooldown should be allowed")
	}
}

func TestLimiterSuppressedCallDoesNotExtendWindow(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	l := NewLimiter(func() time.Time { return now })

	l.ShouldShow("k", 2*time.Second)

	// Suppressed calls must not push the window forward.
	now = base.Add(1900 * time.Millisecond)
	l.ShouldShow("k", 2*time.Second)

	now = base.Add(2100 * time.Millisecond)
	if !l.ShouldShow("k", 2*time.Second) {
		t.Fatalf("window was extended by a suppressed call")
	}
}

func TestLimiterSameInstantDoubleCall(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewLimiter(func() time.Time { return base })

	if !l.ShouldShow("k", 2*time.Second) {
		t.Fatalf("first call should be allowed")
	}
	if l.ShouldShow("k", 2*time.Second) {
		t.Fatalf("second call at the same instant should be suppressed")
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewLimiter(func() time.Time { return base })

	if !l.ShouldShow("wechat-unavailable", 2*time.Second) {
		t.Fatalf("first key should be allowed")
	}
	if !l.ShouldShow("unlink-blocked", 2*time.Second) {
		t.Fatalf("distinct key should not share a window")
	}
}
