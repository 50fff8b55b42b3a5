package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/iksnae/git-weekly/internal"
	"github.com/iksnae/git-weekly/internal/export"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var (
	reportRepos   []string
	reportScan    string
	reportAuthors []string
	reportSince   string
	reportUntil   string
	reportFormat  string
	reportOut     string
	reportCommits bool
	reportAI      aiOptions
)

var errNoRepositories = errors.New("no repositories selected (use --repo, --scan or the repositories config key)")

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build a weekly report from local repositories",
	Long: `Collect commits from local git repositories and render a weekly report.

Repositories come from --repo (repeatable, "path" or "path@branch1,branch2"),
from --scan DIR, or from the repositories config key. Without --since/--until
the current week (Monday to Sunday) is used.`,
	Example: `  git-weekly report --repo .
  git-weekly report --repo ~/src/api@main,release --author "Ann Lee" --format json
  git-weekly report --scan ~/src --commits --ai`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		repos, err := selectRepositories()
		if err != nil {
			return err
		}
		since, until, err := internal.ResolveDateRange(reportSince, reportUntil, time.Now())
		if err != nil {
			return err
		}
		authors := reportAuthors
		if len(authors) == 0 {
			authors = cfg.Authors
		}

		aggregator := internal.NewAggregator(internal.NewGitFetcher(cfg.Git.Binary, cfg.Git.MaxOutputBytes))
		aggregator.OnProgress = internal.StepPrinter(cmd.ErrOrStderr())
		aggregator.OnWarning = func(w internal.FetchWarning) {
			internal.PrintWarning(fmt.Sprintf("Skipped %s: %v", internal.RepoName(w.Repo), w.Err))
		}

		internal.LogInfo("Collecting commits from %s to %s", since, until)
		result := aggregator.Aggregate(ctx, repos, authors, since, until)
		recordHistory(ctx, repos)

		out := cmd.OutOrStdout()
		if result.IsEmpty() {
			internal.FprintInfo(cmd.ErrOrStderr(), export.NoCommitsSentence)
			if reportAI.Enabled || (isMarkdown(reportFormat) && reportOut == "") {
				return nil
			}
			return writeReport(out, result)
		}

		if reportCommits {
			fmt.Fprintln(out, renderCommitTable(result, time.Now()))
			fmt.Fprintln(out)
		}
		if reportAI.Enabled {
			return optimizeReport(ctx, out, result.All(), reportAI)
		}
		return writeReport(out, result)
	},
}

// selectRepositories merges --repo, --scan and configured repositories
func selectRepositories() ([]internal.RepositorySelection, error) {
	var repos []internal.RepositorySelection
	for _, value := range reportRepos {
		sel, err := internal.ParseRepoFlag(value)
		if err != nil {
			return nil, fmt.Errorf("invalid --repo %q: %w", value, err)
		}
		repos = append(repos, sel)
	}
	if reportScan != "" {
		paths, err := internal.DiscoverRepositories(reportScan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", reportScan, err)
		}
		for _, p := range paths {
			repos = append(repos, internal.RepositorySelection{Path: p})
		}
	}
	if len(repos) == 0 {
		repos = cfg.Repositories
	}
	if len(repos) == 0 {
		return nil, errNoRepositories
	}
	if err := internal.ValidateSelections(repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// recordHistory stores the queried paths, first repository most recent
func recordHistory(ctx context.Context, repos []internal.RepositorySelection) {
	store, err := openStore()
	if err != nil {
		internal.LogWarn("Repository history not saved: %v", err)
		return
	}
	defer store.Close()

	history := internal.NewRepoHistory(store)
	for i := len(repos) - 1; i >= 0; i-- {
		if err := history.Add(ctx, repos[i].Path); err != nil {
			internal.LogWarn("Repository history not saved: %v", err)
			return
		}
	}
}

func writeReport(stdout io.Writer, result *internal.AggregationResult) error {
	exporter, err := export.NewExporter(reportFormat)
	if err != nil {
		return err
	}
	if reportOut == "" {
		return exporter.Export(result, stdout)
	}

	f, err := os.Create(reportOut)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := exporter.Export(result, f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	internal.PrintSuccess(fmt.Sprintf("Report written to %s", reportOut))
	return nil
}

// renderCommitTable lists every commit with its relative age
func renderCommitTable(result *internal.AggregationResult, now time.Time) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Repository", "Hash", "Message", "Author", "Branch", "When"})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, WidthMax: 60, WidthMaxEnforcer: text.Trim},
	})

	for _, repo := range result.Repos {
		for _, c := range repo.Commits {
			when := c.Date
			if t, ok := internal.ParseCommitTime(c.Date); ok {
				when = humanize.RelTime(t, now, "ago", "from now")
			}
			tbl.AppendRow(table.Row{internal.RepoName(repo.Path), internal.ShortHash(c.Hash), c.Message, c.Author, c.Branch, when})
		}
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d commits", result.Total())})
	return tbl.Render()
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringArrayVarP(&reportRepos, "repo", "r", nil, "Repository path, optionally with branches: path@main,dev (repeatable)")
	reportCmd.Flags().StringVar(&reportScan, "scan", "", "Use every git repository directly under this directory")
	reportCmd.Flags().StringArrayVarP(&reportAuthors, "author", "a", nil, "Only commits by this author (repeatable)")
	reportCmd.Flags().StringVar(&reportSince, "since", "", "Start date YYYY-MM-DD (default: Monday of this week)")
	reportCmd.Flags().StringVar(&reportUntil, "until", "", "End date YYYY-MM-DD (default: Sunday of this week)")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "md", "Output format: md, json, jsonl, yaml")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Write the report to this file instead of stdout")
	reportCmd.Flags().BoolVar(&reportCommits, "commits", false, "Show a table of the collected commits")
	addAIFlags(reportCmd, &reportAI)
}
