// Package classifier implements the HTTP boundary to the emotion classifier service.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/moodscape/internal/logging"
	"github.com/aretw0/moodscape/pkg/domain"
	"github.com/aretw0/moodscape/pkg/ports"
)

// DefaultTimeout bounds one HTTP round trip.
const DefaultTimeout = 10 * time.Second

// maxResponseSize caps the classifier response body.
const maxResponseSize = 1 << 20

type predictRequest struct {
	Text string `json:"text"`
}

type predictResponse struct {
	Emotion    string             `json:"emotion"`
	Confidence float64            `json:"confidence"`
	AllScores  map[string]float64 `json:"all_scores"`
}

// Client posts text to the classifier's predict endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	logger   *slog.Logger
}

var _ ports.Classifier = (*Client)(nil)

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. The Client never
// modifies hc; a nil hc keeps the default.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the round-trip timeout of the default http.Client.
// It has no effect together with WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client for endpoint (e.g. http://localhost:8000/predict).
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		timeout:  DefaultTimeout,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	return c
}

// Classify implements ports.Classifier. Every failure is a *domain.ClassificationError.
func (c *Client) Classify(ctx context.Context, text string) (ports.Classification, error) {
	body, err := json.Marshal(predictRequest{Text: text})
	if err != nil {
		return ports.Classification{}, &domain.ClassificationError{Kind: domain.FailurePayload, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return ports.Classification{}, &domain.ClassificationError{Kind: domain.FailureNetwork, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("classifier request failed", "endpoint", c.endpoint, "error", err)
		return ports.Classification{}, transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return ports.Classification{}, transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("classifier rejected request", "status", resp.StatusCode, "body_len", len(raw))
		return ports.Classification{}, &domain.ClassificationError{
			Kind:       domain.FailureStatus,
			StatusCode: resp.StatusCode,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	var out predictResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return ports.Classification{}, &domain.ClassificationError{Kind: domain.FailurePayload, Err: err}
	}
	label := domain.ParseMoodLabel(out.Emotion)
	if label.IsNone() {
		return ports.Classification{}, &domain.ClassificationError{
			Kind: domain.FailurePayload,
			Err:  fmt.Errorf("response has no emotion"),
		}
	}

	c.logger.Debug("classifier answered", "mood", label, "confidence", out.Confidence, "took", time.Since(start))
	return ports.Classification{Label: label, Confidence: out.Confidence, Scores: out.AllScores}, nil
}

func transportError(err error) *domain.ClassificationError {
	var netErr interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &domain.ClassificationError{Kind: domain.FailureTimeout, Err: err}
	}
	return &domain.ClassificationError{Kind: domain.FailureNetwork, Err: err}
}
