package main

import (
	"os"

	"github.com/aretw0/moodscape/internal/cli"
	"github.com/aretw0/moodscape/pkg/catalog"
	"github.com/spf13/cobra"
)

var ritualsCmd = &cobra.Command{
	Use:   "rituals",
	Short: "Print the effective ritual catalog",
	Long: `Prints the rituals and themes that a session would use, after loading
rituals_path. --format yaml prints a file that can be edited and loaded back.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		rituals, themes, err := catalog.Load(cfg.RitualsPath)
		if err != nil {
			return err
		}
		return cli.PrintRituals(os.Stdout, rituals, themes, format)
	},
}

func init() {
	rootCmd.AddCommand(ritualsCmd)
	ritualsCmd.Flags().StringP("format", "f", "table", "Output format: table, yaml or json")
}
