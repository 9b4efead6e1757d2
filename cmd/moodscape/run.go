package main

import (
	"context"

	"github.com/aretw0/moodscape/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive check-in",
	Long: `Starts a check-in session. On a terminal this opens the full-screen app;
otherwise (or with --headless) it reads lines from stdin:

  idle     type how you feel and press enter; q to quit
  playing  enter or n for the next step, r to reset, q to quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		headless, _ := cmd.Flags().GetBool("headless")
		quiet, _ := cmd.Flags().GetBool("quiet")

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()

		return cli.Run(sc, cfg, cli.RunOptions{Headless: headless, Quiet: quiet})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Use the line-oriented runner even on a terminal")
	runCmd.Flags().BoolP("quiet", "q", false, "Suppress the banner and system messages")

	// 'run' is the default if no command is provided.
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
