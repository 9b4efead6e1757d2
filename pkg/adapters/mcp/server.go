// Package mcp exposes the check-in session as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/moodscape/pkg/catalog"
	"github.com/aretw0/moodscape/pkg/domain"
	"github.com/aretw0/moodscape/pkg/ports"
	"github.com/aretw0/moodscape/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RitualsURI is the catalog resource.
const RitualsURI = "moodscape://rituals"

// SessionResponse is the structured result of every session tool.
type SessionResponse struct {
	Session domain.Session `json:"session" jsonschema_description:"The check-in session after the call"`
	Step    string         `json:"step,omitempty" jsonschema_description:"Text of the current ritual step"`
	Theme   domain.Theme   `json:"theme" jsonschema_description:"Color theme for the current mood"`
}

// ReflectResponse is the result of the reflect tool.
type ReflectResponse struct {
	Reply string           `json:"reply" jsonschema_description:"Supportive reply"`
	Mood  domain.MoodLabel `json:"mood,omitempty" jsonschema_description:"Mood the reply was biased by"`
}

// Engine defines what the MCP server needs from the session owner.
type Engine interface {
	ports.Controller
	Reflect(text string) string
	Rituals() *catalog.Rituals
	Themes() *catalog.Themes
}

// Server wraps an Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	sanitizer runner.Sanitizer
	mcpServer *server.MCPServer
}

// Option defines a functional option for configuring the Server.
type Option func(*Server)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxInputSize limits submitted text, in bytes.
func WithMaxInputSize(n int) Option {
	return func(s *Server) {
		s.sanitizer.Limit = n
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, version string, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		mcpServer: server.NewMCPServer("moodscape-mcp", strings.TrimSpace(version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{Addr: addr, Handler: mux}
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("submit_text",
		mcp.WithDescription("Submit a free-text check-in. Waits for the classifier and returns the session: a ritual on success, a notice on failure."),
		mcp.WithString("text", mcp.Required(), mcp.Description("How the user is feeling, in their own words")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleSubmit))

	s.mcpServer.AddTool(mcp.NewTool("advance_step",
		mcp.WithDescription("Move to the next ritual step. On the last step the ritual completes and the session returns to idle."),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleAdvance))

	s.mcpServer.AddTool(mcp.NewTool("reset_session",
		mcp.WithDescription("Abandon the current check-in and return to idle."),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleReset))

	s.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Get the current check-in session."),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleGet))

	s.mcpServer.AddTool(mcp.NewTool("reflect",
		mcp.WithDescription("Get a short supportive reply to a message."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The message to reflect on")),
		mcp.WithOutputSchema[ReflectResponse](),
	), mcp.NewStructuredToolHandler(s.handleReflect))

	s.mcpServer.AddTool(mcp.NewTool("list_rituals",
		mcp.WithDescription("List the registered rituals by mood."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		payload, err := s.ritualsJSON()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode rituals: %v", err)), nil
		}
		return mcp.NewToolResultText(payload), nil
	})
}

func (s *Server) handleSubmit(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResponse, error) {
	text, _ := args["text"].(string)
	clean, err := s.sanitizer.Clean(text)
	if err != nil {
		s.logger.Warn("MCP Submit: input rejected", "err", err, "size", len(text))
		return SessionResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	if err := s.engine.SubmitText(clean); err != nil {
		return SessionResponse{}, fmt.Errorf("submit failed: %w", err)
	}
	snap, err := s.engine.WaitSettled(ctx)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("waiting for classification: %w", err)
	}
	return s.response(snap), nil
}

func (s *Server) handleAdvance(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResponse, error) {
	s.engine.AdvanceStep()
	return s.response(s.engine.Snapshot()), nil
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResponse, error) {
	s.engine.Reset()
	return s.response(s.engine.Snapshot()), nil
}

func (s *Server) handleGet(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionResponse, error) {
	return s.response(s.engine.Snapshot()), nil
}

func (s *Server) handleReflect(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ReflectResponse, error) {
	text, _ := args["text"].(string)
	clean, err := s.sanitizer.Clean(text)
	if err != nil {
		return ReflectResponse{}, fmt.Errorf("input rejected: %w", err)
	}
	return ReflectResponse{
		Reply: s.engine.Reflect(clean),
		Mood:  s.engine.Snapshot().Mood,
	}, nil
}

func (s *Server) response(snap domain.Session) SessionResponse {
	return SessionResponse{
		Session: snap,
		Step:    snap.CurrentStep(),
		Theme:   s.engine.Themes().Resolve(snap.Mood),
	}
}

func (s *Server) ritualsJSON() (string, error) {
	rituals := s.engine.Rituals()
	out := make(map[domain.MoodLabel]*domain.Ritual)
	for _, label := range rituals.Labels() {
		out[label], _ = rituals.Lookup(label)
	}
	b, err := json.Marshal(out)
	return string(b), err
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(RitualsURI, "Ritual Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		payload, err := s.ritualsJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to encode rituals: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      RitualsURI,
				MIMEType: "application/json",
				Text:     payload,
			},
		}, nil
	})
}
