package ports

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/moodscape/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunClassifierContract verifies that a Classifier implementation answers
// text with a label and gives up on a cancelled context.
func RunClassifierContract(t *testing.T, c Classifier, text string) {
	t.Helper()

	t.Run("Classify returns a label", func(t *testing.T) {
		got, err := c.Classify(context.Background(), text)
		require.NoError(t, err)
		assert.False(t, got.Label.IsNone(), "label should not be empty")
	})

	t.Run("Cancelled context fails", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.Classify(ctx, text)
		require.Error(t, err)
		ce := domain.AsClassificationError(err)
		assert.True(t, errors.Is(ce, domain.ErrClassificationFailed))
	})
}
