package domain

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmptySubmission is returned when blank text is submitted. No transition happens.
var ErrEmptySubmission = errors.New("empty submission")

// ErrSubmissionPending is returned when text is submitted while a classification is in flight.
var ErrSubmissionPending = errors.New("classification already pending")

// ErrNotIdle is returned when text is submitted during ritual playback.
var ErrNotIdle = errors.New("session is not idle")

// ErrClassificationFailed matches every ClassificationError via errors.Is.
var ErrClassificationFailed = errors.New("classification failed")

// ErrInvalidRitual is returned by catalog validation.
var ErrInvalidRitual = errors.New("invalid ritual")

// ErrMissingFallback is returned when a ritual table lacks the fallback mood.
var ErrMissingFallback = errors.New("ritual table is missing the fallback mood")

// FailureKind distinguishes classification failures for the user-facing message only.
type FailureKind string

const (
	FailureNetwork FailureKind = "network"
	FailureTimeout FailureKind = "timeout"
	FailureStatus  FailureKind = "status"
	FailurePayload FailureKind = "payload"
)

// ClassificationError is the single failure outcome of a classifier call.
type ClassificationError struct {
	Kind       FailureKind
	StatusCode int // set for FailureStatus
	Err        error
}

func (e *ClassificationError) Error() string {
	switch {
	case e.Kind == FailureStatus && e.Err != nil:
		return fmt.Sprintf("classification failed (%s %d): %v", e.Kind, e.StatusCode, e.Err)
	case e.Kind == FailureStatus:
		return fmt.Sprintf("classification failed (%s %d)", e.Kind, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("classification failed (%s): %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("classification failed (%s)", e.Kind)
	}
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrClassificationFailed) true for every kind.
func (e *ClassificationError) Is(target error) bool {
	return target == ErrClassificationFailed
}

// Notice returns the message shown to the user.
func (e *ClassificationError) Notice() string {
	switch e.Kind {
	case FailureTimeout:
		return "The classifier took too long to answer. Please try again."
	case FailureStatus:
		return fmt.Sprintf("The classifier rejected the check-in (status %d). Please try again.", e.StatusCode)
	case FailurePayload:
		return "The classifier sent an answer that could not be read. Please try again."
	default:
		return "Classifier connection failed. Is the classifier service running?"
	}
}

// AsClassificationError normalizes any classifier error. Context deadlines
// become FailureTimeout; anything unrecognized is treated as FailureNetwork.
func AsClassificationError(err error) *ClassificationError {
	if err == nil {
		return nil
	}
	var ce *ClassificationError
	if errors.As(err, &ce) {
		return ce
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &ClassificationError{Kind: FailureTimeout, Err: err}
	}
	return &ClassificationError{Kind: FailureNetwork, Err: err}
}
