package domain

import (
	"context"
	"time"
)

// Cause names what triggered a transition.
type Cause string

const (
	CauseSubmit     Cause = "submit"
	CauseClassified Cause = "classified"
	CauseFailed     Cause = "failed"
	CauseAdvance    Cause = "advance"
	CauseComplete   Cause = "complete"
	CauseReset      Cause = "reset"
)

// TransitionEvent is emitted after every state change.
type TransitionEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	From       Phase     `json:"from"`
	To         Phase     `json:"to"`
	Cause      Cause     `json:"cause"`
	Mood       MoodLabel `json:"mood,omitempty"`
	Step       int       `json:"step"`
	Generation uint64    `json:"generation"`
}

// ClassifyEvent is emitted when a classification resolves, applied or not.
type ClassifyEvent struct {
	Timestamp  time.Time     `json:"timestamp"`
	Generation uint64        `json:"generation"`
	Mood       MoodLabel     `json:"mood,omitempty"`
	Duration   time.Duration `json:"duration"`
	Failure    FailureKind   `json:"failure,omitempty"`
	// Stale is true when the outcome was discarded because the session moved on.
	Stale bool `json:"stale,omitempty"`
	// Fallback is true when Mood has no registered ritual.
	Fallback bool `json:"fallback,omitempty"`
}

// LifecycleHooks defines callbacks for controller observability.
// Hooks run outside the controller lock and may call back into it.
type LifecycleHooks struct {
	OnTransition func(context.Context, *TransitionEvent)
	OnClassify   func(context.Context, *ClassifyEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnTransition: chainTransition(h.OnTransition, other.OnTransition),
		OnClassify:   chainClassify(h.OnClassify, other.OnClassify),
	}
}

func chainTransition(a, b func(context.Context, *TransitionEvent)) func(context.Context, *TransitionEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *TransitionEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainClassify(a, b func(context.Context, *ClassifyEvent)) func(context.Context, *ClassifyEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *ClassifyEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
