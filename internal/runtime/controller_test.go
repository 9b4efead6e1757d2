package runtime_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/moodscape/internal/runtime"
	"github.com/aretw0/moodscape/pkg/adapters/memory"
	"github.com/aretw0/moodscape/pkg/catalog"
	"github.com/aretw0/moodscape/pkg/domain"
	"github.com/aretw0/moodscape/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gateClassifier blocks every call until release is closed and ignores cancellation,
// simulating a response that arrives late.
type gateClassifier struct {
	label   domain.MoodLabel
	release chan struct{}
	entered chan struct{}
}

func newGate(label domain.MoodLabel) *gateClassifier {
	return &gateClassifier{label: label, release: make(chan struct{}), entered: make(chan struct{}, 4)}
}

func (g *gateClassifier) Classify(ctx context.Context, text string) (ports.Classification, error) {
	g.entered <- struct{}{}
	<-g.release
	return ports.Classification{Label: g.label, Confidence: 0.9}, nil
}

func newController(t *testing.T, c ports.Classifier, opts ...runtime.Option) *runtime.Controller {
	t.Helper()
	rituals, _ := catalog.Default()
	ctrl := runtime.NewController(rituals, c, opts...)
	t.Cleanup(ctrl.Close)
	return ctrl
}

func settle(t *testing.T, ctrl *runtime.Controller) domain.Session {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s, err := ctrl.WaitSettled(ctx)
	require.NoError(t, err)
	return s
}

func TestSubmitText_BlankIsNoop(t *testing.T) {
	cls := memory.NewScripted(memory.Response{Label: domain.MoodSad})
	ctrl := newController(t, cls)
	before := ctrl.Snapshot()

	for _, text := range []string{"", "   ", "\n\t"} {
		err := ctrl.SubmitText(text)
		assert.ErrorIs(t, err, domain.ErrEmptySubmission)
		assert.Equal(t, before, ctrl.Snapshot())
	}
	assert.Empty(t, cls.Calls())
}

func TestSubmitText_EntersPendingAndBlocksResubmit(t *testing.T) {
	gate := newGate(domain.MoodSad)
	ctrl := newController(t, gate)

	require.NoError(t, ctrl.SubmitText("feeling blue"))
	s := ctrl.Snapshot()
	assert.Equal(t, domain.PhasePending, s.Phase)
	assert.True(t, s.Pending)
	assert.Equal(t, "feeling blue", s.RawInput)

	assert.ErrorIs(t, ctrl.SubmitText("again"), domain.ErrSubmissionPending)

	close(gate.release)
	s = settle(t, ctrl)
	assert.Equal(t, domain.PhasePlaying, s.Phase)
	assert.Len(t, gate.entered, 1, "only one request in flight")
}

func TestScenarioA_AnxiousEntersPlaying(t *testing.T) {
	ctrl := newController(t, memory.NewStatic(domain.MoodAnxious))

	require.NoError(t, ctrl.SubmitText("I'm so anxious about deadlines"))
	s := settle(t, ctrl)

	assert.Equal(t, domain.PhasePlaying, s.Phase)
	assert.Equal(t, domain.MoodAnxious, s.Mood)
	require.NotNil(t, s.Ritual)
	assert.Equal(t, "4-7-8 Breathing", s.Ritual.Title)
	assert.Equal(t, 0, s.Step)
	assert.False(t, s.Pending)
}

func TestScenarioB_AdvanceThroughCompletion(t *testing.T) {
	ctrl := newController(t, memory.NewStatic(domain.MoodAnxious))
	require.NoError(t, ctrl.SubmitText("I'm so anxious about deadlines"))
	settle(t, ctrl)

	for i := 1; i <= 4; i++ {
		before := ctrl.Snapshot()
		ctrl.AdvanceStep()
		after := ctrl.Snapshot()

		assert.Equal(t, i, after.Step)
		before.Step = after.Step
		assert.Equal(t, before, after, "only the cursor changes")
	}
	assert.True(t, ctrl.Snapshot().IsLastStep())

	ctrl.AdvanceStep()
	s := ctrl.Snapshot()
	assert.Equal(t, domain.PhaseIdle, s.Phase)
	assert.True(t, s.Mood.IsNone())
	assert.Nil(t, s.Ritual)
	assert.Equal(t, 0, s.Step)
	assert.Empty(t, s.RawInput)
}

func TestScenarioC_UnknownLabelUsesCalm(t *testing.T) {
	rituals, _ := catalog.Default()
	ctrl := newController(t, memory.NewStatic("Ecstatic"))

	require.NoError(t, ctrl.SubmitText("best day ever"))
	s := settle(t, ctrl)

	assert.Equal(t, domain.MoodLabel("Ecstatic"), s.Mood)
	assert.Equal(t, *rituals.Resolve(domain.MoodCalm), *s.Ritual)
	assert.Empty(t, s.Notice)
}

func TestScenarioD_FailureReturnsToIdle(t *testing.T) {
	refused := &domain.ClassificationError{Kind: domain.FailureNetwork, Err: errors.New("connection refused")}
	ctrl := newController(t, memory.NewScripted(memory.Response{Err: refused}))

	require.NoError(t, ctrl.SubmitText("I'm so anxious about deadlines"))
	s := settle(t, ctrl)

	assert.Equal(t, domain.PhaseIdle, s.Phase)
	assert.False(t, s.Pending)
	assert.Equal(t, "I'm so anxious about deadlines", s.RawInput)
	assert.Equal(t, refused.Notice(), s.Notice)
	assert.Nil(t, s.Ritual)
}

func TestScenarioE_LateResponseAfterResetIsDiscarded(t *testing.T) {
	gate := newGate(domain.MoodAnxious)
	resolved := make(chan *domain.ClassifyEvent, 1)
	ctrl := newController(t, gate, runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnClassify: func(_ context.Context, e *domain.ClassifyEvent) { resolved <- e },
	}))

	require.NoError(t, ctrl.SubmitText("I'm so anxious about deadlines"))
	<-gate.entered
	ctrl.Reset()

	idle := ctrl.Snapshot()
	assert.Equal(t, domain.PhaseIdle, idle.Phase)
	assert.False(t, idle.Pending)

	close(gate.release)
	select {
	case e := <-resolved:
		assert.True(t, e.Stale)
	case <-time.After(2 * time.Second):
		t.Fatal("classification never resolved")
	}
	assert.Equal(t, idle, ctrl.Snapshot())
}

func TestLateResponseDoesNotLeakIntoNextSubmission(t *testing.T) {
	gate := newGate(domain.MoodAnxious)
	var mu sync.Mutex
	var stale int
	ctrl := newController(t, gate, runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnClassify: func(_ context.Context, e *domain.ClassifyEvent) {
			mu.Lock()
			defer mu.Unlock()
			if e.Stale {
				stale++
			}
		},
	}))

	require.NoError(t, ctrl.SubmitText("first"))
	<-gate.entered
	ctrl.Reset()
	require.NoError(t, ctrl.SubmitText("second"))
	<-gate.entered

	close(gate.release)
	s := settle(t, ctrl)
	assert.Equal(t, domain.PhasePlaying, s.Phase)
	assert.Equal(t, "second", s.RawInput)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return stale == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, domain.PhasePlaying, ctrl.Snapshot().Phase)
}

func TestReset_Idempotent(t *testing.T) {
	ctrl := newController(t, memory.NewStatic(domain.MoodSad))
	require.NoError(t, ctrl.SubmitText("sad"))
	settle(t, ctrl)
	ctrl.AdvanceStep()

	ctrl.Reset()
	once := ctrl.Snapshot()
	ctrl.Reset()
	twice := ctrl.Snapshot()

	assert.Equal(t, once, twice)
	assert.Equal(t, domain.PhaseIdle, once.Phase)
	assert.Empty(t, once.RawInput)
	assert.Equal(t, 0, once.Step)
}

func TestAdvanceStep_OutsidePlaybackIsNoop(t *testing.T) {
	ctrl := newController(t, memory.NewStatic(domain.MoodSad))
	before := ctrl.Snapshot()
	ctrl.AdvanceStep()
	assert.Equal(t, before, ctrl.Snapshot())
}

func TestSubmitText_RejectedDuringPlayback(t *testing.T) {
	ctrl := newController(t, memory.NewStatic(domain.MoodSad))
	require.NoError(t, ctrl.SubmitText("sad"))
	before := settle(t, ctrl)

	assert.ErrorIs(t, ctrl.SubmitText("other"), domain.ErrNotIdle)
	assert.Equal(t, before, ctrl.Snapshot())
}

func TestTimeout_SurfacesAsFailure(t *testing.T) {
	slow := ports.ClassifierFunc(func(ctx context.Context, text string) (ports.Classification, error) {
		<-ctx.Done()
		return ports.Classification{}, ctx.Err()
	})
	ctrl := newController(t, slow, runtime.WithTimeout(20*time.Millisecond))

	require.NoError(t, ctrl.SubmitText("anything"))
	s := settle(t, ctrl)

	assert.Equal(t, domain.PhaseIdle, s.Phase)
	assert.Equal(t, (&domain.ClassificationError{Kind: domain.FailureTimeout}).Notice(), s.Notice)
	assert.Equal(t, "anything", s.RawInput)
}

func TestEmptyLabel_IsPayloadFailure(t *testing.T) {
	ctrl := newController(t, memory.NewStatic(domain.MoodNone))

	require.NoError(t, ctrl.SubmitText("anything"))
	s := settle(t, ctrl)

	assert.Equal(t, domain.PhaseIdle, s.Phase)
	assert.Equal(t, (&domain.ClassificationError{Kind: domain.FailurePayload}).Notice(), s.Notice)
}

func TestRetryAfterFailureClearsNotice(t *testing.T) {
	ctrl := newController(t, memory.NewScripted(
		memory.Response{Err: errors.New("down")},
		memory.Response{Label: domain.MoodFocused},
	))

	require.NoError(t, ctrl.SubmitText("focus"))
	s := settle(t, ctrl)
	require.NotEmpty(t, s.Notice)

	require.NoError(t, ctrl.SubmitText(s.RawInput))
	assert.Empty(t, ctrl.Snapshot().Notice)
	s = settle(t, ctrl)
	assert.Equal(t, domain.MoodFocused, s.Mood)
}

func TestSubscribe_ReceivesLatest(t *testing.T) {
	ctrl := newController(t, memory.NewStatic(domain.MoodCalm))
	updates, unsubscribe := ctrl.Subscribe()
	defer unsubscribe()

	require.NoError(t, ctrl.SubmitText("fine"))
	settle(t, ctrl)

	require.Eventually(t, func() bool {
		select {
		case s := <-updates:
			return s.Phase == domain.PhasePlaying
		default:
			return false
		}
	}, 2*time.Second, 5*time.Millisecond)

	unsubscribe()
	_, open := <-updates
	assert.False(t, open)
}

func TestTransitionHooks(t *testing.T) {
	var mu sync.Mutex
	var causes []domain.Cause
	ctrl := newController(t, memory.NewStatic(domain.MoodFocused), runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			mu.Lock()
			defer mu.Unlock()
			causes = append(causes, e.Cause)
		},
	}))

	require.NoError(t, ctrl.SubmitText("focus"))
	settle(t, ctrl)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(causes) == 2
	}, 2*time.Second, 5*time.Millisecond)
	for i := 0; i < 4; i++ {
		ctrl.AdvanceStep()
	}

	want := []domain.Cause{
		domain.CauseSubmit, domain.CauseClassified,
		domain.CauseAdvance, domain.CauseAdvance, domain.CauseAdvance,
		domain.CauseComplete,
	}
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(causes) == len(want)
	}, 2*time.Second, 5*time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, want, causes)
}

func TestTransitionHooks_OrderedWhenHookResets(t *testing.T) {
	var mu sync.Mutex
	var causes []domain.Cause
	var ctrl *runtime.Controller
	ctrl = newController(t, memory.NewStatic(domain.MoodFocused), runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			if e.Cause == domain.CauseClassified {
				ctrl.Reset()
			}
			mu.Lock()
			defer mu.Unlock()
			causes = append(causes, e.Cause)
		},
	}))

	require.NoError(t, ctrl.SubmitText("focus"))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(causes) == 3
	}, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []domain.Cause{domain.CauseSubmit, domain.CauseClassified, domain.CauseReset}, causes)
	assert.Equal(t, domain.PhaseIdle, ctrl.Snapshot().Phase)
}

func TestClose_RejectsFurtherSubmissions(t *testing.T) {
	rituals, _ := catalog.Default()
	ctrl := runtime.NewController(rituals, memory.NewStatic(domain.MoodCalm))
	ctrl.Close()
	ctrl.Close()

	assert.ErrorIs(t, ctrl.SubmitText("hello"), runtime.ErrClosed)
}
