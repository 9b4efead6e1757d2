package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/moodscape/internal/logging"
	"github.com/aretw0/moodscape/pkg/catalog"
	"github.com/aretw0/moodscape/pkg/domain"
	"github.com/aretw0/moodscape/pkg/ports"
)

// DefaultTimeout bounds a single classification.
const DefaultTimeout = 10 * time.Second

// ErrClosed is returned by SubmitText after Close.
var ErrClosed = errors.New("controller closed")

// Controller is the Session Controller: it owns the single Session and drives
// the Idle -> Pending -> Playing -> Idle cycle.
//
// Every dispatch and every reset bumps the generation; a classification result
// is applied only if its generation is still current.
//
// Lifecycle hooks run outside the lock, in the order the transitions were
// applied. A hook may call back into the Controller.
type Controller struct {
	rituals    *catalog.Rituals
	classifier ports.Classifier
	timeout    time.Duration
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	now        func() time.Time

	mu      sync.Mutex
	state   domain.Session
	cancel  context.CancelFunc // cancels the in-flight classification
	settled chan struct{}      // closed when the in-flight classification resolves
	subs    map[chan domain.Session]struct{}
	closed  bool

	// Hook calls queued in state order. Only one goroutine drains at a time.
	events   []func()
	emitting bool
}

var _ ports.Controller = (*Controller)(nil)

// Option configures the Controller.
type Option func(*Controller)

// WithTimeout bounds each classification. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides time.Now for events.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController creates an idle controller.
func NewController(rituals *catalog.Rituals, classifier ports.Classifier, opts ...Option) *Controller {
	c := &Controller{
		rituals:    rituals,
		classifier: classifier,
		timeout:    DefaultTimeout,
		logger:     logging.NewNop(),
		now:        time.Now,
		state:      domain.IdleSession(),
		subs:       make(map[chan domain.Session]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitText dispatches a classification for text.
// Blank text, a pending request and active playback are rejected with no transition.
func (c *Controller) SubmitText(text string) error {
	if strings.TrimSpace(text) == "" {
		return domain.ErrEmptySubmission
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	switch c.state.Phase {
	case domain.PhasePending:
		c.mu.Unlock()
		return domain.ErrSubmissionPending
	case domain.PhasePlaying:
		c.mu.Unlock()
		return domain.ErrNotIdle
	}

	from := c.state.Phase
	c.state.Generation++
	gen := c.state.Generation
	c.state.RawInput = text
	c.state.Pending = true
	c.state.Phase = domain.PhasePending
	c.state.Notice = ""

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	c.cancel = cancel
	c.settled = make(chan struct{})
	snap := c.broadcastLocked()
	c.queueTransitionLocked(snap, from, domain.CauseSubmit, snap.Mood)
	c.mu.Unlock()

	c.logger.Debug("classification dispatched", "generation", gen, "text_len", len(text))
	c.flushHooks()

	go c.classify(ctx, cancel, gen, text)
	return nil
}

func (c *Controller) classify(ctx context.Context, cancel context.CancelFunc, gen uint64, text string) {
	defer cancel()

	start := c.now()
	result, err := c.classifier.Classify(ctx, text)
	if err == nil && result.Label.IsNone() {
		err = &domain.ClassificationError{Kind: domain.FailurePayload, Err: fmt.Errorf("empty label")}
	}
	if err != nil && ctx.Err() == context.DeadlineExceeded {
		err = &domain.ClassificationError{Kind: domain.FailureTimeout, Err: err}
	}
	c.resolve(gen, result, err, c.now().Sub(start))
}

// resolve applies a classification outcome if gen is still current.
func (c *Controller) resolve(gen uint64, result ports.Classification, err error, took time.Duration) {
	event := &domain.ClassifyEvent{Generation: gen, Duration: took}

	c.mu.Lock()
	if gen != c.state.Generation || !c.state.Pending {
		current := c.state.Generation
		event.Timestamp = c.now()
		event.Stale = true
		event.Mood = result.Label
		c.queueClassifyLocked(event)
		c.mu.Unlock()

		c.logger.Info("discarding stale classification", "generation", gen, "current_generation", current)
		c.flushHooks()
		return
	}

	from := c.state.Phase
	var cause domain.Cause
	if err != nil {
		ce := domain.AsClassificationError(err)
		c.state.Pending = false
		c.state.Phase = domain.PhaseIdle
		c.state.Notice = ce.Notice()
		event.Failure = ce.Kind
		cause = domain.CauseFailed
		c.logger.Warn("classification failed", "generation", gen, "kind", ce.Kind, "error", ce.Err)
	} else {
		_, registered := c.rituals.Lookup(result.Label)
		c.state.Mood = result.Label
		c.state.Ritual = c.rituals.Resolve(result.Label)
		c.state.Step = 0
		c.state.Pending = false
		c.state.Phase = domain.PhasePlaying
		c.state.Confidence = result.Confidence
		event.Mood = result.Label
		event.Fallback = !registered
		cause = domain.CauseClassified
		c.logger.Debug("classification applied", "generation", gen, "mood", result.Label, "fallback", !registered)
	}
	c.settleLocked()
	snap := c.broadcastLocked()
	event.Timestamp = c.now()
	c.queueClassifyLocked(event)
	c.queueTransitionLocked(snap, from, cause, snap.Mood)
	c.mu.Unlock()

	c.flushHooks()
}

// AdvanceStep moves to the next step; on the last step it completes the ritual
// with the same effect as Reset. Outside playback it does nothing.
func (c *Controller) AdvanceStep() {
	c.mu.Lock()
	if c.state.Phase != domain.PhasePlaying || c.state.Ritual == nil {
		c.mu.Unlock()
		return
	}
	if !c.state.IsLastStep() {
		c.state.Step++
		snap := c.broadcastLocked()
		c.queueTransitionLocked(snap, domain.PhasePlaying, domain.CauseAdvance, snap.Mood)
		c.mu.Unlock()
		c.flushHooks()
		return
	}
	c.resetLocked(domain.CauseComplete)
}

// Reset clears the session to idle defaults. An in-flight classification is
// cancelled and its outcome discarded.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.resetLocked(domain.CauseReset)
}

// resetLocked must be called with c.mu held; it releases it.
func (c *Controller) resetLocked(cause domain.Cause) {
	from := c.state.Phase
	mood := c.state.Mood
	gen := c.state.Generation
	if c.state.Pending {
		// Invalidates the in-flight classification.
		gen++
	}
	c.abortLocked()

	c.state = domain.IdleSession()
	c.state.Generation = gen
	snap := c.broadcastLocked()
	c.queueTransitionLocked(snap, from, cause, mood)
	c.mu.Unlock()

	c.logger.Debug("session reset", "cause", cause, "from", from, "mood", mood)
	c.flushHooks()
}

// abortLocked cancels the in-flight classification, if any.
func (c *Controller) abortLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.settleLocked()
}

func (c *Controller) settleLocked() {
	if c.settled != nil {
		close(c.settled)
		c.settled = nil
	}
	c.cancel = nil
}

// Snapshot returns the current session.
func (c *Controller) Snapshot() domain.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe delivers the latest snapshot after every change. Slow readers only
// ever see the most recent snapshot.
func (c *Controller) Subscribe() (<-chan domain.Session, func()) {
	ch := make(chan domain.Session, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	c.subs[ch] = struct{}{}
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if _, ok := c.subs[ch]; ok {
				delete(c.subs, ch)
				close(ch)
			}
		})
	}
}

// WaitSettled blocks until no classification is pending or ctx is done.
func (c *Controller) WaitSettled(ctx context.Context) (domain.Session, error) {
	c.mu.Lock()
	if !c.state.Pending {
		snap := c.state
		c.mu.Unlock()
		return snap, nil
	}
	settled := c.settled
	c.mu.Unlock()

	select {
	case <-settled:
		return c.Snapshot(), nil
	case <-ctx.Done():
		return c.Snapshot(), ctx.Err()
	}
}

// Close cancels any in-flight classification, returning a pending session to
// idle, and closes all subscriptions.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.state.Pending {
		c.state.Pending = false
		c.state.Phase = domain.PhaseIdle
		c.state.Generation++
	}
	c.abortLocked()
	for ch := range c.subs {
		close(ch)
	}
	c.subs = map[chan domain.Session]struct{}{}
}

// broadcastLocked sends the current snapshot to every subscriber without
// blocking and returns it. Must be called with c.mu held.
func (c *Controller) broadcastLocked() domain.Session {
	snap := c.state
	for ch := range c.subs {
		// Latest wins: drop a queued snapshot the subscriber has not read yet.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
	return snap
}

// queueTransitionLocked records a transition hook call. Must be called with c.mu held.
func (c *Controller) queueTransitionLocked(snap domain.Session, from domain.Phase, cause domain.Cause, mood domain.MoodLabel) {
	if c.hooks.OnTransition == nil {
		return
	}
	event := &domain.TransitionEvent{
		Timestamp:  c.now(),
		From:       from,
		To:         snap.Phase,
		Cause:      cause,
		Mood:       mood,
		Step:       snap.Step,
		Generation: snap.Generation,
	}
	c.events = append(c.events, func() { c.hooks.OnTransition(context.Background(), event) })
}

// queueClassifyLocked records a classify hook call. Must be called with c.mu held.
func (c *Controller) queueClassifyLocked(e *domain.ClassifyEvent) {
	if c.hooks.OnClassify == nil {
		return
	}
	c.events = append(c.events, func() { c.hooks.OnClassify(context.Background(), e) })
}

// flushHooks runs queued hook calls in order. If another goroutine is already
// draining, it picks up whatever was queued here before it stops.
func (c *Controller) flushHooks() {
	for {
		c.mu.Lock()
		if c.emitting || len(c.events) == 0 {
			c.mu.Unlock()
			return
		}
		batch := c.events
		c.events = nil
		c.emitting = true
		c.mu.Unlock()

		for _, call := range batch {
			call()
		}

		c.mu.Lock()
		c.emitting = false
		c.mu.Unlock()
	}
}
