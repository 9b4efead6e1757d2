// Package http exposes a single check-in session over REST and Server-Sent Events.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/moodscape/pkg/catalog"
	"github.com/aretw0/moodscape/pkg/domain"
	"github.com/aretw0/moodscape/pkg/ports"
	"github.com/aretw0/moodscape/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine is what the server needs from the session owner.
type Engine interface {
	ports.Controller
	Reflect(text string) string
	Rituals() *catalog.Rituals
	Themes() *catalog.Themes
}

// Server serves one Engine.
type Server struct {
	Engine    Engine
	Logger    *slog.Logger
	Gatherer  prometheus.Gatherer
	Sanitizer runner.Sanitizer
	Version   string
}

// Option defines a functional option for configuring the Server.
type Option func(*Server)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// WithGatherer mounts GET /metrics for g.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithMaxInputSize limits submitted text, in bytes.
func WithMaxInputSize(n int) Option {
	return func(s *Server) {
		s.Sanitizer.Limit = n
	}
}

// WithVersion is reported by GET /health.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

type textRequest struct {
	Text string `json:"text"`
}

type sessionResponse struct {
	domain.Session
	Theme domain.Theme `json:"theme"`
}

type ritualResponse struct {
	Mood   domain.MoodLabel `json:"mood"`
	Ritual *domain.Ritual   `json:"ritual"`
}

type reflectResponse struct {
	Reply string           `json:"reply"`
	Mood  domain.MoodLabel `json:"mood"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler creates the HTTP handler for engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine: engine,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/session", s.GetSession)
	r.Post("/session/submit", s.Submit)
	r.Post("/session/advance", s.Advance)
	r.Post("/session/reset", s.Reset)
	r.Get("/session/events", s.SubscribeEvents)
	r.Get("/rituals", s.ListRituals)
	r.Get("/themes", s.ListThemes)
	r.Post("/reflect", s.Reflect)
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": strings.TrimSpace(s.Version),
	})
}

// GetSession handles GET /session.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.session())
}

// Submit handles POST /session/submit. Classification runs in the background;
// the response is the pending snapshot.
func (s *Server) Submit(w http.ResponseWriter, r *http.Request) {
	var body textRequest
	if !s.decode(w, r, &body) {
		return
	}

	text, err := s.Sanitizer.Clean(body.Text)
	if err != nil {
		s.Logger.Warn("Submit: input rejected", "err", err, "size", len(body.Text))
		s.writeError(w, inputStatus(err), err)
		return
	}

	if err := s.Engine.SubmitText(text); err != nil {
		s.writeError(w, submitStatus(err), err)
		return
	}
	s.writeJSON(w, http.StatusAccepted, s.session())
}

func submitStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmptySubmission):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSubmissionPending), errors.Is(err, domain.ErrNotIdle):
		return http.StatusConflict
	default:
		return http.StatusServiceUnavailable
	}
}

// Advance handles POST /session/advance.
func (s *Server) Advance(w http.ResponseWriter, r *http.Request) {
	s.Engine.AdvanceStep()
	s.writeJSON(w, http.StatusOK, s.session())
}

// Reset handles POST /session/reset.
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	s.Engine.Reset()
	s.writeJSON(w, http.StatusOK, s.session())
}

// ListRituals handles GET /rituals.
func (s *Server) ListRituals(w http.ResponseWriter, r *http.Request) {
	rituals := s.Engine.Rituals()
	labels := rituals.Labels()
	resp := make([]ritualResponse, 0, len(labels))
	for _, label := range labels {
		ritual, _ := rituals.Lookup(label)
		resp = append(resp, ritualResponse{Mood: label, Ritual: ritual})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// ListThemes handles GET /themes.
func (s *Server) ListThemes(w http.ResponseWriter, r *http.Request) {
	themes := s.Engine.Themes()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"default": themes.Default(),
		"moods":   themes.All(),
	})
}

// Reflect handles POST /reflect.
func (s *Server) Reflect(w http.ResponseWriter, r *http.Request) {
	var body textRequest
	if !s.decode(w, r, &body) {
		return
	}
	text, err := s.Sanitizer.Clean(body.Text)
	if err != nil {
		s.writeError(w, inputStatus(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, reflectResponse{
		Reply: s.Engine.Reflect(text),
		Mood:  s.Engine.Snapshot().Mood,
	})
}

// SubscribeEvents handles GET /session/events (SSE).
// The current snapshot is sent first, then one event per change.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	updates, cancel := s.Engine.Subscribe()
	defer cancel()

	s.Logger.Info("SSE: client subscribed")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	s.writeEvent(w, s.session())
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE: client disconnected")
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			s.writeEvent(w, sessionResponse{Session: snap, Theme: s.Engine.Themes().Resolve(snap.Mood)})
			flusher.Flush()
		}
	}
}

func (s *Server) writeEvent(w io.Writer, v sessionResponse) {
	payload, err := json.Marshal(v)
	if err != nil {
		s.Logger.Error("SSE: encode failed", "err", err)
		return
	}
	fmt.Fprintf(w, "event: session\ndata: %s\n\n", payload)
}

func (s *Server) session() sessionResponse {
	snap := s.Engine.Snapshot()
	return sessionResponse{Session: snap, Theme: s.Engine.Themes().Resolve(snap.Mood)}
}

// decode reads a JSON body of at most maxBodySize bytes.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodySize())
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.Logger.Warn("request body too large", "path", r.URL.Path, "limit", tooLarge.Limit)
			s.writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("%w: limit=%d", runner.ErrInputTooLarge, s.Sanitizer.MaxSize()))
			return false
		}
		s.Logger.Warn("invalid request body", "path", r.URL.Path, "err", err)
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

// inputStatus maps a sanitizer error to a status code.
func inputStatus(err error) int {
	if errors.Is(err, runner.ErrInputTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// maxBodySize allows the text limit at worst-case JSON escaping (\u00XX
// per byte) plus room for the envelope.
func (s *Server) maxBodySize() int64 {
	return int64(s.Sanitizer.MaxSize())*6 + 1024
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}
