// Package runner drives a check-in over plain line-oriented IO.
//
// It is the headless counterpart of the TUI: the same controller, read from an
// io.Reader and written to an io.Writer, which makes it usable in pipes,
// scripts and tests.
//
// Protocol:
//
//	idle     any text submits a check-in; q, quit or exit leaves
//	playing  an empty line or "n" advances, "r" resets, q leaves
//
// A classification failure is printed as a notice and the prompt returns.
package runner
