// Package memory provides in-process classifiers for development and tests.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aretw0/moodscape/pkg/domain"
	"github.com/aretw0/moodscape/pkg/ports"
)

// Static always answers with the same label.
type Static struct {
	Label      domain.MoodLabel
	Confidence float64
}

// NewStatic creates a Static classifier.
func NewStatic(label domain.MoodLabel) *Static {
	return &Static{Label: label, Confidence: 1}
}

// Classify implements ports.Classifier.
func (s *Static) Classify(ctx context.Context, text string) (ports.Classification, error) {
	if err := ctx.Err(); err != nil {
		return ports.Classification{}, domain.AsClassificationError(err)
	}
	return ports.Classification{Label: s.Label, Confidence: s.Confidence}, nil
}

// Response is one scripted classifier outcome.
type Response struct {
	Label domain.MoodLabel
	Err   error
}

// Scripted replays responses in order and records the texts it received.
// After the script is exhausted it keeps returning the last response.
type Scripted struct {
	mu        sync.Mutex
	responses []Response
	calls     []string
}

// NewScripted creates a Scripted classifier.
func NewScripted(responses ...Response) *Scripted {
	return &Scripted{responses: responses}
}

// Classify implements ports.Classifier.
func (s *Scripted) Classify(ctx context.Context, text string) (ports.Classification, error) {
	if err := ctx.Err(); err != nil {
		return ports.Classification{}, domain.AsClassificationError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, text)
	if len(s.responses) == 0 {
		return ports.Classification{}, fmt.Errorf("no scripted response")
	}
	r := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	if r.Err != nil {
		return ports.Classification{}, r.Err
	}
	return ports.Classification{Label: r.Label, Confidence: 1}, nil
}

// Calls returns the texts received so far.
func (s *Scripted) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// keywordRules are checked in order; the first rule with a matching word wins.
var keywordRules = []struct {
	label domain.MoodLabel
	words []string
}{
	{domain.MoodAnxious, []string{"anxious", "anxiety", "nervous", "worried", "panic", "deadline"}},
	{domain.MoodOverwhelmed, []string{"overwhelmed", "too much", "drowning", "swamped"}},
	{domain.MoodSad, []string{"sad", "cry", "lonely", "grief", "heartbroken"}},
	{domain.MoodLow, []string{"low", "tired", "exhausted", "empty", "meh"}},
	{domain.MoodEnergized, []string{"energized", "excited", "pumped", "motivated"}},
	{domain.MoodFocused, []string{"focused", "focus", "concentrate", "flow"}},
}

// Keyword is a rule-based stand-in for the real classifier, used when the
// service is not available during development. Unmatched text is Calm.
type Keyword struct{}

// NewKeyword creates a Keyword classifier.
func NewKeyword() *Keyword {
	return &Keyword{}
}

// Classify implements ports.Classifier.
func (k *Keyword) Classify(ctx context.Context, text string) (ports.Classification, error) {
	if err := ctx.Err(); err != nil {
		return ports.Classification{}, domain.AsClassificationError(err)
	}

	lower := strings.ToLower(text)
	scores := make(map[string]float64, len(keywordRules)+1)
	best, bestHits := domain.MoodCalm, 0
	total := 0
	for _, rule := range keywordRules {
		hits := 0
		for _, w := range rule.words {
			hits += strings.Count(lower, w)
		}
		scores[string(rule.label)] = float64(hits)
		total += hits
		if hits > bestHits {
			best, bestHits = rule.label, hits
		}
	}
	if total == 0 {
		scores[string(domain.MoodCalm)] = 1
		return ports.Classification{Label: domain.MoodCalm, Confidence: 1, Scores: scores}, nil
	}
	for k, v := range scores {
		scores[k] = v / float64(total)
	}
	return ports.Classification{Label: best, Confidence: scores[string(best)], Scores: scores}, nil
}
