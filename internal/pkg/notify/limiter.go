// Package notify rate-limits user-facing notifications so repeated failures
// (rapid clicks, flapping provider) do not stack duplicate toasts.
package notify

import (
	"sync"
	"time"
)

// Limiter suppresses repeat notifications per key within a cooldown window.
// The timestamp is recorded only when a notification is allowed through, so a
// suppressed call does not extend the window.
type Limiter struct {
	mu   sync.Mutex
	last map[string]time.Time
	now  func() time.Time
}

func NewLimiter(now func() time.Time) *Limiter {
	if now == nil {
		now = time.Now
	}
	return &Limiter{
		last: make(map[string]time.Time),
		now:  now,
	}
}

// ShouldShow reports whether a notification for key may be shown and, if so,
// records the current time for it. The check and the record happen under one
// lock so two calls in the same instant cannot both pass.
func (l *Limiter) ShouldShow(key string, cooldown time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if last, ok := l.last[key]; ok && now.Sub(last) < cooldown {
		return false
	}
	l.last[key] = now
	return true
}

// Default is the process-wide limiter used by controllers. Notification state
// is scoped to the process lifetime, matching the page-session scope of the
// suppression windows.
var Default = NewLimiter(time.Now)
