package cmd

import (
	"fmt"
	"strings"

	"github.com/iksnae/git-weekly/internal/optimizer"
	"github.com/spf13/cobra"
)

// providersCmd represents the providers command
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List AI provider presets and their models",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, p := range optimizer.Providers {
			marker := " "
			if p.ID == optimizer.DefaultProvider {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %-12s %s\n", marker, p.ID, p.Name)
			if p.APIURL != "" {
				fmt.Fprintf(out, "    url:    %s\n", p.APIURL)
			} else {
				fmt.Fprintln(out, "    url:    set ai.api_url")
			}
			if len(p.Models) > 0 {
				fmt.Fprintf(out, "    models: %s\n", strings.Join(p.Models, ", "))
			} else {
				fmt.Fprintln(out, "    models: set ai.custom_model")
			}
			if p.APIKeyURL != "" {
				fmt.Fprintf(out, "    keys:   %s\n", p.APIKeyURL)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
