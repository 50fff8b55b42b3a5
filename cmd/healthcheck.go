package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/git-weekly/internal"
	"github.com/iksnae/git-weekly/internal/optimizer"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that git-weekly can build reports",
	Long: `Check the health of git-weekly by verifying:
  • The git binary is available
  • The configuration loads
  • The settings store opens
  • An AI API key is configured
  • Every configured repository is a git repository`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		ctx := cmd.Context()
		failures := 0

		fmt.Fprintln(out, sectionStyle.Render("🔍 git-weekly Health Check"))
		fmt.Fprintln(out)

		// Step 1: git binary
		fmt.Fprintln(out, infoStyle.Render("Step 1: Checking git binary..."))
		if err := internal.CheckGitBinary(cfg.Git.Binary); err != nil {
			failures++
			fmt.Fprintln(out, errorStyle.Render("❌ git not available:"), err)
		} else {
			fmt.Fprintln(out, successStyle.Render("✅ git found"))
			if verbose {
				fmt.Fprintf(out, "   Binary: %s\n", cfg.Git.Binary)
			}
		}
		fmt.Fprintln(out)

		// Step 2: configuration
		fmt.Fprintln(out, infoStyle.Render("Step 2: Checking configuration..."))
		fmt.Fprintln(out, successStyle.Render("✅ Configuration loaded"))
		if verbose {
			fmt.Fprintf(out, "   Repositories: %d\n", len(cfg.Repositories))
			fmt.Fprintf(out, "   Authors: %d\n", len(cfg.Authors))
			fmt.Fprintf(out, "   Store backend: %s\n", cfg.Store.Backend)
		}
		fmt.Fprintln(out)

		// Step 3: settings store
		fmt.Fprintln(out, infoStyle.Render("Step 3: Opening settings store..."))
		ai := cfg.AI
		store, err := openStore()
		if err != nil {
			failures++
			fmt.Fprintln(out, errorStyle.Render("❌ Settings store unavailable:"), err)
		} else {
			keys, err := store.Keys(ctx)
			if err != nil {
				failures++
				fmt.Fprintln(out, errorStyle.Render("❌ Settings store unreadable:"), err)
			} else {
				fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Settings store open (%d keys)", len(keys))))
			}
			if settings, err := internal.NewSettings(store).Load(ctx); err == nil {
				ai.ApplySettings(settings)
			}
			store.Close()
		}
		fmt.Fprintln(out)

		// Step 4: AI configuration
		fmt.Fprintln(out, infoStyle.Render("Step 4: Checking AI configuration..."))
		checkAI(out, ai)
		fmt.Fprintln(out)

		// Step 5: repositories
		fmt.Fprintln(out, infoStyle.Render("Step 5: Checking configured repositories..."))
		if len(cfg.Repositories) == 0 {
			fmt.Fprintln(out, warningStyle.Render("⚠️  No repositories configured"))
			fmt.Fprintln(out, "   Use --repo with 'git-weekly report' or add a repositories list to config.yaml")
		}
		fetcher := gitFetcher()
		for _, repo := range cfg.Repositories {
			if fetcher.IsGitRepo(ctx, repo.Path) {
				fmt.Fprintln(out, successStyle.Render("✅ "+repo.Path))
				continue
			}
			failures++
			fmt.Fprintln(out, errorStyle.Render("❌ "+repo.Path), "is not a git repository")
		}
		fmt.Fprintln(out)

		// Summary
		fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
		fmt.Fprintln(out)
		if failures > 0 {
			fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("❌ Health check failed (%d problems)", failures)))
			return fmt.Errorf("health check failed: %d problems", failures)
		}
		fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
		return nil
	},
}

// checkAI reports the optimizer setup; a missing key only disables --ai
func checkAI(out io.Writer, ai internal.AIConfig) {
	req := optimizer.Request{
		APIKey:      ai.APIKey,
		Provider:    ai.Provider,
		APIURL:      ai.APIURL,
		Model:       ai.Model,
		CustomModel: ai.CustomModel,
	}
	if ai.APIKey == "" {
		fmt.Fprintln(out, warningStyle.Render("⚠️  No API key configured, --ai is unavailable"))
		fmt.Fprintln(out, "   Run 'git-weekly settings set ai_api_key KEY' or set GITWEEKLY_AI_API_KEY")
	} else {
		fmt.Fprintln(out, successStyle.Render("✅ API key configured"))
	}
	endpoint, err := req.Endpoint()
	if err != nil {
		fmt.Fprintln(out, warningStyle.Render("⚠️  "+err.Error()))
		return
	}
	if verbose {
		fmt.Fprintf(out, "   Endpoint: %s\n", endpoint)
		fmt.Fprintf(out, "   Model: %s\n", req.ResolvedModel())
	}
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
}
