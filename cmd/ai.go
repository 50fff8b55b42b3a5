package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/git-weekly/internal"
	"github.com/iksnae/git-weekly/internal/optimizer"
	"github.com/spf13/cobra"
)

// aiOptions holds the --ai flag family shared by the report commands
type aiOptions struct {
	Enabled  bool
	Provider string
	Model    string
	Prompt   string
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	aiRunner = optimizer.NewRunner(optimizer.New())
)

func addAIFlags(c *cobra.Command, o *aiOptions) {
	c.Flags().BoolVar(&o.Enabled, "ai", false, "Rewrite the report with the configured AI provider")
	c.Flags().StringVar(&o.Provider, "provider", "", "AI provider preset (see 'git-weekly providers')")
	c.Flags().StringVar(&o.Model, "model", "", "AI model")
	c.Flags().StringVar(&o.Prompt, "prompt", "", "System prompt replacing the default template")
}

// aiRequest builds the optimizer request from config, stored settings and flags
func aiRequest(ctx context.Context, commits []internal.CommitRecord, opts aiOptions) optimizer.Request {
	ai := cfg.AI
	if store, err := openStore(); err != nil {
		internal.LogWarn("Stored AI settings not loaded: %v", err)
	} else {
		settings, err := internal.NewSettings(store).Load(ctx)
		if err != nil {
			internal.LogWarn("Stored AI settings not loaded: %v", err)
		}
		ai.ApplySettings(settings)
		store.Close()
	}

	if opts.Provider != "" {
		ai.Provider = opts.Provider
	}
	if opts.Model != "" {
		ai.Model = opts.Model
	}
	if opts.Prompt != "" {
		ai.PromptTemplate = opts.Prompt
	}

	return optimizer.Request{
		Commits:        commits,
		APIKey:         ai.APIKey,
		Model:          ai.Model,
		PromptTemplate: ai.PromptTemplate,
		Provider:       ai.Provider,
		APIURL:         ai.APIURL,
		CustomModel:    ai.CustomModel,
		Temperature:    ai.Temperature,
		MaxTokens:      ai.MaxTokens,
	}
}

// optimizeReport streams the AI rewrite to w until it completes or ctx is cancelled
func optimizeReport(ctx context.Context, w io.Writer, commits []internal.CommitRecord, opts aiOptions) error {
	req := aiRequest(ctx, commits, opts)
	if internal.IsTerminal(w) {
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("✨ Optimizing %d commits with %s", len(commits), req.ResolvedModel())))
		fmt.Fprintln(w)
	}

	session := aiRunner.Start(ctx, req, optimizer.Callbacks{
		OnChunk: func(text string) {
			fmt.Fprint(w, text)
		},
	})
	defer aiRunner.Cancel()

	err := session.Wait()
	if session.Text() != "" {
		fmt.Fprintln(w)
	}
	if optimizer.IsCancelled(err) {
		internal.PrintWarning("Optimization cancelled")
	}
	if err != nil {
		return fmt.Errorf("failed to optimize report: %w", err)
	}
	return nil
}

func isMarkdown(format string) bool {
	return format == "md" || format == "markdown"
}
