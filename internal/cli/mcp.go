package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/moodscape"
	"github.com/aretw0/moodscape/internal/config"
	"github.com/aretw0/moodscape/pkg/adapters/mcp"
)

// MCPOptions selects the MCP transport.
type MCPOptions struct {
	// Transport is "stdio" (default) or "sse".
	Transport string
	// BaseURL is advertised to SSE clients.
	BaseURL string
}

// ServeMCP exposes a session as MCP tools until the client disconnects or ctx is done.
func ServeMCP(ctx context.Context, cfg *config.Config, opts MCPOptions) error {
	logger, err := NewLogger(cfg)
	if err != nil {
		return err
	}
	engine, err := NewEngine(cfg, logger, nil)
	if err != nil {
		return err
	}
	defer engine.Close()

	srv := mcp.NewServer(engine, moodscape.Version,
		mcp.WithLogger(logger),
		mcp.WithMaxInputSize(cfg.MaxInputSize),
	)

	switch opts.Transport {
	case "", "stdio":
		logger.Info("MCP Server listening (stdio)")
		return srv.ServeStdio()
	case "sse":
		baseURL := opts.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost" + cfg.Addr
		}
		return srv.ServeSSE(ctx, cfg.Addr, baseURL)
	default:
		return fmt.Errorf("unknown transport %q (want stdio or sse)", opts.Transport)
	}
}
