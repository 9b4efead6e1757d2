package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/moodscape"
	"github.com/aretw0/moodscape/internal/config"
	httpadapter "github.com/aretw0/moodscape/pkg/adapters/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ShutdownTimeout bounds graceful shutdown of the HTTP server.
const ShutdownTimeout = 5 * time.Second

// NewServer builds the HTTP server for cfg, with its own metrics registry.
// The returned engine must be closed by the caller.
func NewServer(cfg *config.Config) (*http.Server, *moodscape.Engine, error) {
	logger, err := NewLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	engine, err := NewEngine(cfg, logger, reg)
	if err != nil {
		return nil, nil, err
	}

	handler := httpadapter.NewHandler(engine,
		httpadapter.WithLogger(logger),
		httpadapter.WithGatherer(reg),
		httpadapter.WithMaxInputSize(cfg.MaxInputSize),
		httpadapter.WithVersion(moodscape.Version),
	)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv, engine, nil
}

// Serve runs the HTTP API until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, cfg *config.Config) error {
	srv, engine, err := NewServer(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	serverErrors := make(chan error, 1)
	go func() {
		fmt.Printf("Starting MoodScape Server on %s\n", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		fmt.Println("\nStart shutdown...")

		// SSE streams end when the engine closes its subscriptions.
		engine.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Graceful shutdown did not complete in %v: %v\n", ShutdownTimeout, err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		fmt.Println("MoodScape Server stopped gracefully")
		return nil
	}
}
