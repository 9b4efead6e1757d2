package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/moodscape/pkg/domain"
	"github.com/aretw0/moodscape/pkg/ports"
)

// Prompt is shown on the input screen.
const Prompt = "How are you feeling right now?"

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for rich rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// Runner handles the check-in loop over the provided IO.
type Runner struct {
	Input     io.Reader
	Output    io.Writer
	Renderer  ContentRenderer
	Logger    *slog.Logger
	Sanitizer Sanitizer
}

// NewRunner creates a Runner on Stdin/Stdout.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Input:  os.Stdin,
		Output: os.Stdout,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run loops until the user quits, the input ends or ctx is cancelled.
// End of input and an explicit quit return nil; a read error is returned.
func (r *Runner) Run(ctx context.Context, ctrl ports.Controller) error {
	lines := r.readLines(ctx)

	var shownNotice, shownRitual uint64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		snap := ctrl.Snapshot()
		switch snap.Phase {
		case domain.PhasePending:
			r.printf("Analyzing...\n")
			if _, err := ctrl.WaitSettled(ctx); err != nil {
				return err
			}
			continue

		case domain.PhasePlaying:
			if snap.Generation != shownRitual {
				shownRitual = snap.Generation
				r.printf("\nDetected mood: %s\n", snap.Mood)
			}
			if err := r.showStep(snap); err != nil {
				return err
			}
			r.printf("[enter] next  [r] reset  [q] quit\n> ")

			line, ok := r.next(ctx, lines)
			if !ok {
				return ctx.Err()
			}
			if line.err != nil {
				return fmt.Errorf("read input: %w", line.err)
			}
			if line.oversize > 0 {
				r.printf("Unknown command.\n")
				continue
			}
			switch cmd := strings.ToLower(strings.TrimSpace(line.text)); {
			case cmd == "" || cmd == "n":
				last := snap.IsLastStep()
				ctrl.AdvanceStep()
				if last {
					r.printf("\nRitual complete.\n")
				}
			case cmd == "r":
				ctrl.Reset()
				r.printf("\nSession reset.\n")
			case isQuit(cmd):
				return nil
			default:
				r.printf("Unknown command %q.\n", cmd)
			}

		default:
			if snap.Notice != "" && snap.Generation != shownNotice {
				shownNotice = snap.Generation
				r.printf("\n! %s\n", snap.Notice)
			}
			r.printf("\n%s\n> ", Prompt)

			line, ok := r.next(ctx, lines)
			if !ok {
				return ctx.Err()
			}
			if line.err != nil {
				return fmt.Errorf("read input: %w", line.err)
			}
			if line.oversize > 0 {
				err := fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, line.oversize, r.Sanitizer.MaxSize())
				r.Logger.Warn("input rejected", "err", err)
				r.printf("! %v\n", err)
				continue
			}
			if isQuit(strings.ToLower(strings.TrimSpace(line.text))) {
				return nil
			}
			if err := r.submit(ctrl, line.text); err != nil {
				return err
			}
		}
	}
}

func (r *Runner) submit(ctrl ports.Controller, line string) error {
	text, err := r.Sanitizer.Clean(line)
	if err != nil {
		r.Logger.Warn("input rejected", "err", err)
		r.printf("! %v\n", err)
		return nil
	}

	err = ctrl.SubmitText(text)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrEmptySubmission):
		return nil
	case errors.Is(err, domain.ErrSubmissionPending), errors.Is(err, domain.ErrNotIdle):
		r.Logger.Debug("submission ignored", "err", err)
		return nil
	default:
		return fmt.Errorf("submit: %w", err)
	}
}

func (r *Runner) showStep(snap domain.Session) error {
	card := fmt.Sprintf("## %s\n\n**Step %d/%d**\n\n%s\n", snap.Ritual.Title, snap.Step+1, snap.Ritual.Len(), snap.CurrentStep())
	if r.Renderer != nil {
		rendered, err := r.Renderer(card)
		if err != nil {
			return fmt.Errorf("render step: %w", err)
		}
		card = rendered
	}
	r.printf("%s", card)
	return nil
}

// inputLine is one line of Input. Oversize is the byte length of a line that
// did not fit the read buffer; its text is discarded.
type inputLine struct {
	text     string
	oversize int
	err      error
}

// readLines pumps Input into a channel so reads can race ctx.
// The channel is closed at end of input, after a read error if there was one.
func (r *Runner) readLines(ctx context.Context) <-chan inputLine {
	out := make(chan inputLine)
	go func() {
		defer close(out)
		// Room for a line at the limit plus its CRLF.
		br := bufio.NewReaderSize(r.Input, r.Sanitizer.MaxSize()+2)
		for {
			line, err := readLine(br)
			if err == nil || line.text != "" || line.oversize > 0 {
				select {
				case out <- line:
				case <-ctx.Done():
					return
				}
			}
			if err == io.EOF {
				return
			}
			if err != nil {
				select {
				case out <- inputLine{err: err}:
				case <-ctx.Done():
				}
				return
			}
		}
	}()
	return out
}

// readLine reads up to the next newline. A line longer than the buffer is
// consumed to its end and reported by length only.
func readLine(br *bufio.Reader) (inputLine, error) {
	chunk, err := br.ReadSlice('\n')
	if err != bufio.ErrBufferFull {
		return inputLine{text: strings.TrimRight(string(chunk), "\r\n")}, err
	}

	size := len(chunk)
	for err == bufio.ErrBufferFull {
		chunk, err = br.ReadSlice('\n')
		size += len(strings.TrimRight(string(chunk), "\r\n"))
	}
	return inputLine{oversize: size}, err
}

// next returns false at end of input or when ctx is done.
func (r *Runner) next(ctx context.Context, lines <-chan inputLine) (inputLine, bool) {
	select {
	case line, ok := <-lines:
		return line, ok
	case <-ctx.Done():
		return inputLine{}, false
	}
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.Output, format, args...)
}

func isQuit(cmd string) bool {
	switch cmd {
	case "q", "quit", "exit":
		return true
	}
	return false
}
