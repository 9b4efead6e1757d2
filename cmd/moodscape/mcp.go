package main

import (
	"context"

	"github.com/aretw0/moodscape/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts a check-in session as an MCP Server.
This allows AI agents to drive a check-in through tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		baseURL, _ := cmd.Flags().GetString("base-url")

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()
		return cli.ServeMCP(sc, cfg, cli.MCPOptions{Transport: transport, BaseURL: baseURL})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringP("transport", "t", "stdio", "Transport: stdio or sse")
	mcpCmd.Flags().String("addr", "", "Address to listen on for sse (overrides addr)")
	mcpCmd.Flags().String("base-url", "", "Base URL advertised to sse clients")
}
