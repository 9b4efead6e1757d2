package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/moodscape/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHooks_RecordEvents(t *testing.T) {
	c, err := New(prometheus.NewRegistry())
	require.NoError(t, err)
	hooks := c.Hooks()
	ctx := context.Background()

	hooks.OnClassify(ctx, &domain.ClassifyEvent{Mood: domain.MoodAnxious, Duration: 200 * time.Millisecond})
	hooks.OnClassify(ctx, &domain.ClassifyEvent{Failure: domain.FailureNetwork})
	hooks.OnClassify(ctx, &domain.ClassifyEvent{Mood: domain.MoodSad, Stale: true})
	hooks.OnTransition(ctx, &domain.TransitionEvent{Cause: domain.CauseComplete, Mood: domain.MoodAnxious})
	hooks.OnTransition(ctx, &domain.TransitionEvent{Cause: domain.CauseReset})
	hooks.OnTransition(ctx, &domain.TransitionEvent{Cause: domain.CauseAdvance})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.CheckIns.WithLabelValues("Anxious")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.CheckIns.WithLabelValues("Sad")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Failures.WithLabelValues("network")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Stale))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Completions.WithLabelValues("Anxious")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Resets))
	var m dto.Metric
	require.NoError(t, c.ClassifyLatency.(prometheus.Metric).Write(&m))
	assert.Equal(t, uint64(3), m.GetHistogram().GetSampleCount())
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}
