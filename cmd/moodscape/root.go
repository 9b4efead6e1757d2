package main

import (
	"fmt"
	"os"

	"github.com/aretw0/moodscape/internal/config"
	"github.com/spf13/cobra"
)

// cfg is loaded before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "moodscape",
	Short: "MoodScape is a guided emotional check-in",
	Long: `MoodScape turns a free-text check-in into a short guided ritual.
Describe how you feel, and step through the ritual chosen for your mood.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if err := applyFlags(cmd, loaded); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file")
	pf.String("classifier-url", "", "Classifier endpoint (overrides classifier_url)")
	pf.Duration("timeout", 0, "Classification timeout (overrides classifier_timeout)")
	pf.Bool("mock", false, "Use the built-in keyword classifier instead of the service")
	pf.String("rituals", "", "Path to a YAML ritual catalog (overrides rituals_path)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: text or json")
}

// applyFlags layers explicitly set flags over the loaded config.
func applyFlags(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("classifier-url") {
		c.ClassifierURL, _ = flags.GetString("classifier-url")
	}
	if flags.Changed("timeout") {
		c.ClassifierTimeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("mock") {
		c.MockClassifier, _ = flags.GetBool("mock")
	}
	if flags.Changed("rituals") {
		c.RitualsPath, _ = flags.GetString("rituals")
	}
	if flags.Changed("log-level") {
		c.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		c.LogFormat, _ = flags.GetString("log-format")
	}
	if flags.Lookup("addr") != nil && flags.Changed("addr") {
		c.Addr, _ = flags.GetString("addr")
	}
	return c.Validate()
}
