package optimizer

import (
	"fmt"
	"strings"

	"github.com/iksnae/git-weekly/internal"
)

// DefaultPromptTemplate is the system prompt used when no template is configured
const DefaultPromptTemplate = `You are a professional assistant for writing technical weekly reports. Using the git commit records provided, write a clear, professional weekly report.

Requirements:
1. Group and merge similar commits.
2. The report is read by management: avoid heavy technical jargon, keep it concise, and merge similar items.
3. Categorize by type of work (🛠️ Features, 🐞 Bug fixes, 🔧 Improvements, 📦 Other), with a numbered list under each category.
4. Highlight the most important results.
5. Output only the report content with no extra explanation.
6. Start every item with an emoji.
7. Write markdown, but do not use '#' or '*'; number every list item.`

const userPromptLeadIn = "Here are this week's git commit records. Please turn them into a weekly report:"

// Request describes one optimization
type Request struct {
	Commits        []internal.CommitRecord
	APIKey         string
	Model          string
	PromptTemplate string
	Provider       string // preset ID; DefaultProvider when empty
	APIURL         string // overrides the preset URL; required for CustomProvider
	CustomModel    string // model for CustomProvider
	Temperature    float64
	MaxTokens      int
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

// Validate checks the request before any network call
func (r Request) Validate() error {
	if len(r.Commits) == 0 {
		return ErrNoCommits
	}
	if strings.TrimSpace(r.APIKey) == "" {
		return ErrMissingAPIKey
	}
	_, err := r.Endpoint()
	return err
}

func (r Request) providerID() string {
	if r.Provider == "" {
		return DefaultProvider
	}
	return r.Provider
}

// Endpoint resolves the completion URL
func (r Request) Endpoint() (string, error) {
	if r.APIURL != "" {
		return r.APIURL, nil
	}
	p, ok := LookupProvider(r.providerID())
	if !ok {
		return "", fmt.Errorf("%w: unknown provider %q", ErrNoEndpoint, r.providerID())
	}
	if p.APIURL == "" {
		return "", fmt.Errorf("%w: provider %q needs an API URL", ErrNoEndpoint, p.ID)
	}
	return p.APIURL, nil
}

// ResolvedModel returns the model sent to the endpoint
func (r Request) ResolvedModel() string {
	if r.providerID() == CustomProvider && r.CustomModel != "" {
		return r.CustomModel
	}
	if r.Model != "" {
		return r.Model
	}
	return DefaultModelFor(r.providerID())
}

// SystemPrompt returns the trimmed template, or DefaultPromptTemplate when it is blank
func SystemPrompt(template string) string {
	if t := strings.TrimSpace(template); t != "" {
		return t
	}
	return DefaultPromptTemplate
}

// UserPrompt renders the commit list as "N. message (author, date)" lines
func UserPrompt(commits []internal.CommitRecord) string {
	var b strings.Builder
	b.WriteString(userPromptLeadIn)
	b.WriteString("\n\n")
	for i, c := range commits {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s (%s, %s)", i+1, c.Message, c.Author, c.Date)
	}
	return b.String()
}

func (r Request) body() chatRequest {
	temperature := r.Temperature
	if temperature <= 0 {
		temperature = internal.DefaultTemperature
	}
	maxTokens := r.MaxTokens
	if maxTokens <= 0 {
		maxTokens = internal.DefaultMaxTokens
	}
	return chatRequest{
		Model: r.ResolvedModel(),
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt(r.PromptTemplate)},
			{Role: "user", Content: UserPrompt(r.Commits)},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Stream:      true,
	}
}
