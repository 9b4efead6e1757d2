package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/moodscape/internal/config"
	"github.com/aretw0/moodscape/internal/presentation/tui"
	"github.com/aretw0/moodscape/pkg/runner"
	"golang.org/x/term"
)

// RunOptions controls the interactive check-in.
type RunOptions struct {
	// Headless forces the line runner even on a terminal.
	Headless bool
	// Quiet suppresses the banner and system messages.
	Quiet bool

	Input  io.Reader
	Output io.Writer
}

// Run starts a check-in session: the TUI on a terminal, the line runner otherwise.
func Run(ctx context.Context, cfg *config.Config, opts RunOptions) error {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	logger, err := NewLogger(cfg)
	if err != nil {
		return err
	}
	engine, err := NewEngine(cfg, logger, nil)
	if err != nil {
		return err
	}
	defer engine.Close()

	interactive := !opts.Headless && isTerminal(opts.Input) && isTerminal(opts.Output)
	if interactive {
		return tui.Run(ctx, engine, cfg.MaxInputSize)
	}

	if !opts.Quiet && isTerminal(opts.Output) {
		tui.PrintBanner(opts.Output)
	}

	runOpts := []runner.Option{
		runner.WithInput(opts.Input),
		runner.WithOutput(opts.Output),
		runner.WithLogger(logger),
		runner.WithMaxInputSize(cfg.MaxInputSize),
	}
	if isTerminal(opts.Output) {
		runOpts = append(runOpts, runner.WithRenderer(tui.NewRenderer(80)))
	}

	err = runner.NewRunner(runOpts...).Run(ctx, engine)
	if errors.Is(err, context.Canceled) {
		if !opts.Quiet {
			fmt.Fprintln(opts.Output)
			printSystemMessage(opts.Output, "Interrupted.")
		}
		return nil
	}
	return err
}

func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
