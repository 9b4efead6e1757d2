// Package metrics exposes Prometheus collectors fed by controller lifecycle hooks.
package metrics

import (
	"context"

	"github.com/aretw0/moodscape/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector groups the check-in metrics.
type Collector struct {
	CheckIns        *prometheus.CounterVec
	Failures        *prometheus.CounterVec
	ClassifyLatency prometheus.Histogram
	Completions     *prometheus.CounterVec
	Resets          prometheus.Counter
	Stale           prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		CheckIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "moodscape_checkins_total",
			Help: "Classifications applied to the session, by mood.",
		}, []string{"mood"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "moodscape_classification_failures_total",
			Help: "Classifications that failed, by failure kind.",
		}, []string{"kind"}),
		ClassifyLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "moodscape_classify_duration_seconds",
			Help:    "Duration of classifier calls.",
			Buckets: prometheus.DefBuckets,
		}),
		Completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "moodscape_ritual_completions_total",
			Help: "Rituals played through to the last step, by mood.",
		}, []string{"mood"}),
		Resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "moodscape_resets_total",
			Help: "Explicit session resets.",
		}),
		Stale: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "moodscape_stale_responses_total",
			Help: "Classifier responses discarded because the session moved on.",
		}),
	}

	for _, col := range []prometheus.Collector{c.CheckIns, c.Failures, c.ClassifyLatency, c.Completions, c.Resets, c.Stale} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Hooks returns lifecycle hooks that record into the collectors.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnClassify: func(_ context.Context, e *domain.ClassifyEvent) {
			c.ClassifyLatency.Observe(e.Duration.Seconds())
			switch {
			case e.Stale:
				c.Stale.Inc()
			case e.Failure != "":
				c.Failures.WithLabelValues(string(e.Failure)).Inc()
			default:
				c.CheckIns.WithLabelValues(string(e.Mood)).Inc()
			}
		},
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			switch e.Cause {
			case domain.CauseComplete:
				c.Completions.WithLabelValues(string(e.Mood)).Inc()
			case domain.CauseReset:
				c.Resets.Inc()
			}
		},
	}
}
