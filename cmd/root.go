package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/git-weekly/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// cfg is loaded before every subcommand runs
var cfg *internal.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "git-weekly",
	Short: "Turn this week's git commits into a weekly report",
	Long: `Collect commits from one or more git repositories, merge them across
branches and authors, and render a weekly report.

Features:
  • Aggregate local repositories, branches and authors
  • Parse pasted git log output
  • Fetch commits from GitHub, GitLab, Gitee and Codeup
  • Export as Markdown, JSON, JSONL or YAML
  • Rewrite the report with an AI model, streamed as it is written

Quick Start:
  git-weekly report --repo .                    # This week's commits of the current repo
  git-weekly report --repo api@main,dev --ai    # Two branches, rewritten by AI
  git log | git-weekly parse                    # Report from pasted log output`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := internal.LoadConfig(configPath)
		if err != nil {
			return err
		}
		level, err := internal.ParseLogLevel(loaded.Logging.Level)
		if err != nil {
			return err
		}
		internal.SetLogLevel(level)
		internal.SetVerbose(verbose)
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openStore opens the configured settings store
func openStore() (internal.Store, error) {
	store, err := internal.OpenStore(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings store: %w", err)
	}
	return store, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./config.yaml or ~/.config/git-weekly/config.yaml)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
