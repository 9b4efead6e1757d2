package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/moodscape/internal/config"
	"github.com/aretw0/moodscape/internal/logging"
	"github.com/aretw0/moodscape/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sc.sigCh)
		select {
		case sig := <-sc.sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			sc.Cancel()
		case <-sc.Context.Done():
		}
	}()

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// NewLogger builds the application logger from cfg. Logs go to stderr.
func NewLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewWithFormat(os.Stderr, level, cfg.LogFormat), nil
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// debugHooks log every transition and classification at debug level.
func debugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.Debug("Transition",
				"from", e.From, "to", e.To, "cause", e.Cause,
				"mood", e.Mood, "step", e.Step, "generation", e.Generation)
		},
		OnClassify: func(ctx context.Context, e *domain.ClassifyEvent) {
			switch {
			case e.Stale:
				logger.Debug("Classify (Stale)", "generation", e.Generation, "duration", e.Duration)
			case e.Failure != "":
				logger.Debug("Classify (Failure)", "generation", e.Generation, "kind", e.Failure, "duration", e.Duration)
			default:
				logger.Debug("Classify (Success)", "generation", e.Generation, "mood", e.Mood, "fallback", e.Fallback, "duration", e.Duration)
			}
		},
	}
}
