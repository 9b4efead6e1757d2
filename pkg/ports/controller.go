package ports

import (
	"context"

	"github.com/aretw0/moodscape/pkg/domain"
)

// Controller is the inbound surface of the Session Controller.
type Controller interface {
	// SubmitText dispatches a classification for text. Rejected submissions
	// return an error and leave the session untouched.
	SubmitText(text string) error

	// AdvanceStep moves the playback cursor, completing the ritual on the last step.
	AdvanceStep()

	// Reset returns the session to idle. Always legal.
	Reset()

	// Snapshot returns the current session.
	Snapshot() domain.Session

	// Subscribe delivers the latest snapshot after every change.
	// The returned function unsubscribes and closes the channel.
	Subscribe() (<-chan domain.Session, func())

	// WaitSettled blocks until no classification is pending.
	WaitSettled(ctx context.Context) (domain.Session, error)
}
