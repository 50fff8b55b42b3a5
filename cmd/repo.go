package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/git-weekly/internal"
	"github.com/spf13/cobra"
)

var currentStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("42")).
	Bold(true)

func gitFetcher() *internal.GitFetcher {
	return internal.NewGitFetcher(cfg.Git.Binary, cfg.Git.MaxOutputBytes)
}

// branchesCmd represents the branches command
var branchesCmd = &cobra.Command{
	Use:   "branches REPO",
	Short: "List the branches of a repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fetcher := gitFetcher()
		if !fetcher.IsGitRepo(cmd.Context(), args[0]) {
			return fmt.Errorf("%w: %s", internal.ErrNotGitRepo, args[0])
		}
		branches, current, err := fetcher.ListBranches(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to list branches: %w", err)
		}

		out := cmd.OutOrStdout()
		tty := internal.IsTerminal(out)
		for _, b := range branches {
			switch {
			case b == current && tty:
				fmt.Fprintln(out, currentStyle.Render("* "+b))
			case b == current:
				fmt.Fprintln(out, "* "+b)
			default:
				fmt.Fprintln(out, "  "+b)
			}
		}
		return nil
	},
}

// authorsCmd represents the authors command
var authorsCmd = &cobra.Command{
	Use:   "authors REPO",
	Short: "List the commit authors of a repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		authors, err := gitFetcher().ListAuthors(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to list authors: %w", err)
		}
		for _, a := range authors {
			fmt.Fprintln(cmd.OutOrStdout(), a)
		}
		return nil
	},
}

// pullCmd represents the pull command
var pullCmd = &cobra.Command{
	Use:   "pull REPO...",
	Short: "Fetch and pull the current branch of each repository",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fetcher := gitFetcher()
		failed := 0
		for _, path := range args {
			var msg string
			err := internal.ShowProgress(cmd.Context(), "Pulling "+internal.RepoName(path), func() error {
				var err error
				msg, err = fetcher.Pull(cmd.Context(), path)
				return err
			})
			if err != nil {
				failed++
				internal.PrintError(fmt.Sprintf("%s: %v", internal.RepoName(path), err))
				continue
			}
			internal.PrintSuccess(fmt.Sprintf("%s: %s", internal.RepoName(path), msg))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d repositories failed to pull", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(branchesCmd)
	rootCmd.AddCommand(authorsCmd)
	rootCmd.AddCommand(pullCmd)
}
