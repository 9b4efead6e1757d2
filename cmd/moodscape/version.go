package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/moodscape"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of moodscape",
	// The version needs no config.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("moodscape version %s\n", strings.TrimSpace(moodscape.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
