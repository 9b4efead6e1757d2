package ports

import (
	"context"

	"github.com/aretw0/moodscape/pkg/domain"
)

// Classification is a successful classifier outcome.
type Classification struct {
	Label      domain.MoodLabel   `json:"emotion"`
	Confidence float64            `json:"confidence"`
	Scores     map[string]float64 `json:"all_scores,omitempty"`
}

// Classifier maps free text to a mood label.
// Implementations must honor ctx and report failures as errors; the caller
// collapses every error into a single classification failure.
type Classifier interface {
	Classify(ctx context.Context, text string) (Classification, error)
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(ctx context.Context, text string) (Classification, error)

// Classify implements Classifier.
func (f ClassifierFunc) Classify(ctx context.Context, text string) (Classification, error) {
	return f(ctx, text)
}
