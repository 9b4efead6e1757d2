package moodscape

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/moodscape/internal/runtime"
	"github.com/aretw0/moodscape/pkg/catalog"
	"github.com/aretw0/moodscape/pkg/domain"
	"github.com/aretw0/moodscape/pkg/ports"
	"github.com/aretw0/moodscape/pkg/reflection"
)

// Version is the current release.
var Version = "0.1.0"

// ErrNoClassifier is returned by New when no classifier is given.
var ErrNoClassifier = errors.New("classifier is required")

// Engine is the high-level entry point for the MoodScape library.
// It wraps the session controller together with the ritual and theme catalogs.
type Engine struct {
	ctrl    *runtime.Controller
	rituals *catalog.Rituals
	themes  *catalog.Themes
	timeout time.Duration
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

var _ ports.Controller = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithCatalog replaces the built-in rituals and themes.
func WithCatalog(rituals *catalog.Rituals, themes *catalog.Themes) Option {
	return func(e *Engine) {
		e.rituals = rituals
		e.themes = themes
	}
}

// WithTimeout bounds each classification. Defaults to 10s.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

// WithLifecycleHooks registers observability hooks.
// Calling it more than once merges the hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes an Engine around classifier.
func New(classifier ports.Classifier, opts ...Option) (*Engine, error) {
	if classifier == nil {
		return nil, ErrNoClassifier
	}

	eng := &Engine{timeout: runtime.DefaultTimeout}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.rituals == nil {
		eng.rituals, eng.themes = catalog.Default()
	}
	if eng.themes == nil {
		eng.themes = catalog.NewThemes(catalog.DefaultTheme, nil)
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	eng.ctrl = runtime.NewController(eng.rituals, classifier,
		runtime.WithTimeout(eng.timeout),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	)
	return eng, nil
}

// SubmitText dispatches a classification for text.
func (e *Engine) SubmitText(text string) error { return e.ctrl.SubmitText(text) }

// AdvanceStep moves to the next ritual step, completing the ritual on the last one.
func (e *Engine) AdvanceStep() { e.ctrl.AdvanceStep() }

// Reset abandons the current check-in.
func (e *Engine) Reset() { e.ctrl.Reset() }

// Snapshot returns the current session.
func (e *Engine) Snapshot() domain.Session { return e.ctrl.Snapshot() }

// Subscribe delivers the latest snapshot after each change.
func (e *Engine) Subscribe() (<-chan domain.Session, func()) { return e.ctrl.Subscribe() }

// WaitSettled blocks until no classification is pending.
func (e *Engine) WaitSettled(ctx context.Context) (domain.Session, error) {
	return e.ctrl.WaitSettled(ctx)
}

// Theme returns the palette for the current session.
func (e *Engine) Theme() domain.Theme {
	return e.themes.Resolve(e.ctrl.Snapshot().Mood)
}

// Reflect answers text with a short supportive line, biased by the current mood.
func (e *Engine) Reflect(text string) string {
	return reflection.Reply(text, e.ctrl.Snapshot().Mood)
}

// Rituals returns the ritual catalog.
func (e *Engine) Rituals() *catalog.Rituals { return e.rituals }

// Themes returns the theme catalog.
func (e *Engine) Themes() *catalog.Themes { return e.themes }

// Close cancels any in-flight classification and ends all subscriptions.
func (e *Engine) Close() { e.ctrl.Close() }
