package runner

import (
	"io"
	"log/slog"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithInput sets the line source.
func WithInput(r io.Reader) Option {
	return func(rn *Runner) {
		rn.Input = r
	}
}

// WithOutput sets the destination for prompts and cards.
func WithOutput(w io.Writer) Option {
	return func(rn *Runner) {
		rn.Output = w
	}
}

// WithRenderer configures the content renderer (e.g. Markdown to ANSI).
func WithRenderer(renderer ContentRenderer) Option {
	return func(rn *Runner) {
		rn.Renderer = renderer
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(rn *Runner) {
		if logger != nil {
			rn.Logger = logger
		}
	}
}

// WithMaxInputSize limits submitted text, in bytes.
func WithMaxInputSize(n int) Option {
	return func(rn *Runner) {
		rn.Sanitizer.Limit = n
	}
}
