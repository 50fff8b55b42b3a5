package cmd

import (
	"fmt"

	"github.com/iksnae/git-weekly/internal"
	"github.com/spf13/cobra"
)

var (
	historyClear bool
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently used repository paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		history := internal.NewRepoHistory(store)
		if historyClear {
			if err := history.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			internal.PrintSuccess("Repository history cleared")
			return nil
		}

		paths, err := history.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if len(paths) == 0 {
			internal.PrintInfo("No repositories used yet")
			return nil
		}
		for i, p := range paths {
			fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i+1, p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Remove all entries")
}
