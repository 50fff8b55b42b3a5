package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/iksnae/git-weekly/internal"
	"github.com/iksnae/git-weekly/internal/export"
	"github.com/spf13/cobra"
)

var (
	remoteToken   string
	remoteAuthors []string
	remoteSince   string
	remoteUntil   string
	remoteFormat  string
	remoteAI      aiOptions
)

// remoteCmd represents the remote command
var remoteCmd = &cobra.Command{
	Use:   "remote URL...",
	Short: "Build a report from hosted repositories",
	Long: `Fetch commits through the REST API of GitHub, GitLab, Gitee or Alibaba Cloud
Codeup and render a weekly report. HTTPS and SSH clone URLs are accepted.

The access token comes from --token or the remote.token config key.`,
	Example: `  git-weekly remote https://github.com/owner/repo
  git-weekly remote git@gitlab.com:group/project.git --token $TOKEN --author ann`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		since, until, err := internal.ResolveDateRange(remoteSince, remoteUntil, time.Now())
		if err != nil {
			return err
		}

		repos := make([]internal.RepositorySelection, 0, len(args))
		for _, raw := range args {
			if _, err := internal.ParseRepoURL(raw); err != nil {
				return err
			}
			repos = append(repos, internal.RepositorySelection{Path: raw})
		}
		if err := internal.ValidateSelections(repos); err != nil {
			return err
		}

		token := remoteToken
		if token == "" {
			token = cfg.Remote.Token
		}
		fetcher := internal.NewRemoteFetcher(token)
		fetcher.Endpoints = cfg.Remote.Endpoints

		aggregator := internal.NewAggregator(fetcher)
		aggregator.OnWarning = func(w internal.FetchWarning) {
			internal.PrintWarning(fmt.Sprintf("Skipped %s: %v", w.Repo, w.Err))
		}
		var result *internal.AggregationResult
		err = internal.ShowProgress(ctx, fmt.Sprintf("Fetching %d repositories", len(repos)), func() error {
			result = aggregator.Aggregate(ctx, repos, remoteAuthors, since, until)
			return nil
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if result.IsEmpty() {
			internal.FprintInfo(cmd.ErrOrStderr(), export.NoCommitsSentence)
			if remoteAI.Enabled || isMarkdown(remoteFormat) {
				return nil
			}
		} else if remoteAI.Enabled {
			return optimizeReport(ctx, out, result.All(), remoteAI)
		}
		exporter, err := export.NewExporter(remoteFormat)
		if err != nil {
			return err
		}
		return exporter.Export(result, out)
	},
}

func init() {
	rootCmd.AddCommand(remoteCmd)
	remoteCmd.Flags().StringVar(&remoteToken, "token", "", "API access token")
	remoteCmd.Flags().StringArrayVarP(&remoteAuthors, "author", "a", nil, "Only commits by this author (repeatable)")
	remoteCmd.Flags().StringVar(&remoteSince, "since", "", "Start date YYYY-MM-DD (default: Monday of this week)")
	remoteCmd.Flags().StringVar(&remoteUntil, "until", "", "End date YYYY-MM-DD (default: Sunday of this week)")
	remoteCmd.Flags().StringVarP(&remoteFormat, "format", "f", "md", "Output format: md, json, jsonl, yaml")
	addAIFlags(remoteCmd, &remoteAI)
}
