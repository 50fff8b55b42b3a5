package cmd

import (
	"fmt"

	"github.com/iksnae/git-weekly/internal"
	"github.com/spf13/cobra"
)

// settingsCmd represents the settings command
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change stored AI settings",
	Long: `Stored AI settings fill the ai.* config values left empty by the config
file and environment. Keys: ai_api_key, ai_model, ai_prompt_template, ai_provider.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show stored AI settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		s, err := internal.NewSettings(store).Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, row := range []struct{ key, value string }{
			{internal.SettingAPIKey, internal.MaskSecret(s.APIKey)},
			{internal.SettingModel, s.Model},
			{internal.SettingPromptTemplate, s.PromptTemplate},
			{internal.SettingProvider, s.Provider},
		} {
			value := row.value
			if value == "" {
				value = "(not set)"
			}
			fmt.Fprintf(out, "%-20s %s\n", row.key, value)
		}
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY [VALUE]",
	Short: "Store an AI setting; an empty or missing value removes it",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := ""
		if len(args) == 2 {
			value = args[1]
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := internal.NewSettings(store).Set(cmd.Context(), args[0], value); err != nil {
			return err
		}
		if value == "" {
			internal.PrintSuccess(fmt.Sprintf("Removed %s", args[0]))
		} else {
			internal.PrintSuccess(fmt.Sprintf("Saved %s", args[0]))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
