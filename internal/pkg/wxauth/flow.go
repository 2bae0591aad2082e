package wxauth

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ResHubApp/ResHub/internal/pkg/redirects"
)

// FlowState is the callback page's state machine. Success and Error are
// terminal; a fresh navigation starts a new Flow.
type FlowState int

const (
	StateIdle FlowState = iota
	StateLoading
	StateSuccess
	StateError
)

func (s FlowState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "invalid"
	}
}

// SuccessRedirectDelay is how long the terminal success page is shown before
// navigating to the resolved destination.
const SuccessRedirectDelay = 1500 * time.Millisecond

// ExchangeFunc performs the backend code/state exchange for the flow's
// intent. It runs at most once per Flow.
type ExchangeFunc func(ctx context.Context) error

// Flow drives one callback attempt: Idle -> Loading -> Success | Error.
// All access is single-threaded (one request handler); the one-shot guard
// protects against a re-driven Run, not against parallelism.
type Flow struct {
	id         string
	intent     Intent
	state      FlowState
	redirectTo string
	category   Category
	fired      bool
}

func NewFlow(intent Intent) *Flow {
	return &Flow{
		id:     uuid.New().String(),
		intent: intent,
		state:  StateIdle,
	}
}

func (f *Flow) ID() string { return f.id }

func (f *Flow) Intent() Intent { return f.intent }

func (f *Flow) State() FlowState { return f.state }

func (f *Flow) Category() Category { return f.category }

func (f *Flow) RedirectTo() string { return f.redirectTo }

// RetryPath is where the error page's retry affordance points: the flow's
// natural entry, never the callback URL whose code/state are already spent.
func (f *Flow) RetryPath() string {
	if f.intent == IntentLink {
		return "/settings"
	}
	return "/login"
}

func (f *Flow) successFallback() string {
	if f.intent == IntentLink {
		return "/settings"
	}
	return "/resources"
}

// Run executes the state machine for the inbound callback parameters.
// Missing state or code is classified locally and never reaches the backend;
// state takes precedence when both are absent, matching the classifier's rule
// order. The exchange fires only on the Idle -> Loading transition, so a
// re-driven Run can never duplicate it.
func (f *Flow) Run(ctx context.Context, code, state, from string, exchange ExchangeFunc) {
	if f.state != StateIdle {
		return
	}

	if state == "" {
		f.fail(CategoryStateError)
		return
	}
	if code == "" {
		f.fail(CategoryCodeError)
		return
	}

	f.state = StateLoading
	if f.fired {
		return
	}
	f.fired = true

	if err := exchange(ctx); err != nil {
		log.Printf("wxauth: flow %s (%s) exchange failed: %v", f.id, f.intent, err)
		f.fail(ClassifyErr(err))
		return
	}

	f.redirectTo = redirects.Resolve(from, f.successFallback())
	f.state = StateSuccess
}

func (f *Flow) fail(category Category) {
	if f.state == StateSuccess || f.state == StateError {
		return
	}
	f.state = StateError
	f.category = category
}
