package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/iksnae/git-weekly/internal"
	"github.com/iksnae/git-weekly/internal/export"
	"github.com/spf13/cobra"
)

var (
	parseFormat string
	parseAI     aiOptions
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse [FILE]",
	Short: "Build a report from pasted git log output",
	Long: `Parse git log output from FILE, or from stdin when no file is given,
and print a flat weekly report.

Accepted formats: --pretty=format:"%h|%s|%an|%ai", --oneline and the default
verbose git log output.`,
	Example: `  git log --since=monday | git-weekly parse
  git-weekly parse log.txt --format json
  git-weekly parse log.txt --ai --provider deepseek`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer f.Close()
			in = f
		}

		data, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("failed to read git log: %w", err)
		}
		commits := internal.NewDeduplicator().Deduplicate(internal.ParseGitLog(string(data)))
		internal.LogDebug("Parsed %d commits", len(commits))

		out := cmd.OutOrStdout()
		if parseAI.Enabled {
			if len(commits) == 0 {
				internal.FprintInfo(cmd.ErrOrStderr(), export.NoCommitsSentence)
				return nil
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return optimizeReport(ctx, out, commits, parseAI)
		}
		if isMarkdown(parseFormat) {
			_, err := fmt.Fprintln(out, export.GenerateWeeklyReport(commits, nil))
			return err
		}

		exporter, err := export.NewExporter(parseFormat)
		if err != nil {
			return err
		}
		result := internal.NewAggregationResult()
		name := "stdin"
		if len(args) == 1 {
			name = args[0]
		}
		result.Put(name, commits)
		return exporter.Export(result, out)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "md", "Output format: md, json, jsonl, yaml")
	addAIFlags(parseCmd, &parseAI)
}
