package main

import (
	"context"

	"github.com/aretw0/moodscape/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts a single check-in session behind a JSON API, with an SSE stream of
session changes and Prometheus metrics at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()
		return cli.Serve(sc, cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (overrides addr)")
}
