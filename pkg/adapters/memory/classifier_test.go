package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/moodscape/pkg/adapters/memory"
	"github.com/aretw0/moodscape/pkg/domain"
	"github.com/aretw0/moodscape/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic_Contract(t *testing.T) {
	ports.RunClassifierContract(t, memory.NewStatic(domain.MoodSad), "hello")
}

func TestKeyword_Contract(t *testing.T) {
	ports.RunClassifierContract(t, memory.NewKeyword(), "hello")
}

func TestKeyword_Classify(t *testing.T) {
	k := memory.NewKeyword()
	ctx := context.Background()

	tests := []struct {
		text string
		want domain.MoodLabel
	}{
		{"I'm so anxious about deadlines", domain.MoodAnxious},
		{"There is too much on my plate", domain.MoodOverwhelmed},
		{"Feeling pumped and excited!", domain.MoodEnergized},
		{"Just a normal afternoon", domain.MoodCalm},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := k.Classify(ctx, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Label)
			assert.Greater(t, got.Confidence, 0.0)
		})
	}
}

func TestScripted_ReplaysInOrder(t *testing.T) {
	boom := errors.New("boom")
	s := memory.NewScripted(
		memory.Response{Label: domain.MoodAnxious},
		memory.Response{Err: boom},
	)
	ctx := context.Background()

	got, err := s.Classify(ctx, "one")
	require.NoError(t, err)
	assert.Equal(t, domain.MoodAnxious, got.Label)

	_, err = s.Classify(ctx, "two")
	assert.ErrorIs(t, err, boom)

	_, err = s.Classify(ctx, "three")
	assert.ErrorIs(t, err, boom, "last response repeats")

	assert.Equal(t, []string{"one", "two", "three"}, s.Calls())
}
