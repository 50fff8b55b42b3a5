package optimizer

import (
	"errors"
	"strings"
	"testing"

	"github.com/iksnae/git-weekly/internal"
)

func sampleCommits() []internal.CommitRecord {
	return []internal.CommitRecord{
		{Hash: "8f3e2a1", Message: "Add login page", Author: "Ann Lee", Date: "2024-01-10 09:15:00"},
		{Hash: "1a2b3c4", Message: "Fix crash on save", Author: "Bo Chen", Date: "2024-01-09 18:02:11"},
	}
}

func TestUserPrompt(t *testing.T) {
	want := userPromptLeadIn + "\n\n" +
		"1. Add login page (Ann Lee, 2024-01-10 09:15:00)\n" +
		"2. Fix crash on save (Bo Chen, 2024-01-09 18:02:11)"

	if got := UserPrompt(sampleCommits()); got != want {
		t.Errorf("UserPrompt() =\n%s\nwant\n%s", got, want)
	}
}

func TestSystemPrompt(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"empty uses default", "", DefaultPromptTemplate},
		{"blank uses default", "  \n\t", DefaultPromptTemplate},
		{"custom is trimmed", "  Be brief.\n", "Be brief."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SystemPrompt(tt.template); got != tt.want {
				t.Errorf("SystemPrompt(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestRequest_Endpoint(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		want    string
		wantErr error
	}{
		{"default provider", Request{}, "https://dashscope.aliyuncs.com/compatible-mode/v1/chat/completions", nil},
		{"preset", Request{Provider: "deepseek"}, "https://api.deepseek.com/chat/completions", nil},
		{"url overrides preset", Request{Provider: "openai", APIURL: "http://localhost:9/v1"}, "http://localhost:9/v1", nil},
		{"custom with url", Request{Provider: CustomProvider, APIURL: "http://llm.local/chat"}, "http://llm.local/chat", nil},
		{"custom without url", Request{Provider: CustomProvider}, "", ErrNoEndpoint},
		{"unknown provider", Request{Provider: "nope"}, "", ErrNoEndpoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.Endpoint()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Endpoint() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Endpoint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequest_ResolvedModel(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{"default", Request{}, DefaultModel},
		{"explicit", Request{Model: "qwen-max"}, "qwen-max"},
		{"preset default", Request{Provider: "openai"}, "gpt-4o"},
		{"custom model", Request{Provider: CustomProvider, CustomModel: "llama3", Model: "x"}, "llama3"},
		{"custom falls back to model", Request{Provider: CustomProvider, Model: "x"}, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.ResolvedModel(); got != tt.want {
				t.Errorf("ResolvedModel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"no commits", Request{APIKey: "k"}, ErrNoCommits},
		{"no key", Request{Commits: sampleCommits()}, ErrMissingAPIKey},
		{"blank key", Request{Commits: sampleCommits(), APIKey: "  "}, ErrMissingAPIKey},
		{"no endpoint", Request{Commits: sampleCommits(), APIKey: "k", Provider: CustomProvider}, ErrNoEndpoint},
		{"valid", Request{Commits: sampleCommits(), APIKey: "k"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequest_Body(t *testing.T) {
	body := Request{Commits: sampleCommits(), PromptTemplate: "Summarize."}.body()

	if body.Model != DefaultModel || !body.Stream {
		t.Errorf("body model=%q stream=%v", body.Model, body.Stream)
	}
	if body.Temperature != internal.DefaultTemperature || body.MaxTokens != internal.DefaultMaxTokens {
		t.Errorf("body temperature=%v max_tokens=%d", body.Temperature, body.MaxTokens)
	}
	if len(body.Messages) != 2 || body.Messages[0].Role != "system" || body.Messages[1].Role != "user" {
		t.Fatalf("messages = %+v", body.Messages)
	}
	if body.Messages[0].Content != "Summarize." {
		t.Errorf("system prompt = %q", body.Messages[0].Content)
	}
	if !strings.Contains(body.Messages[1].Content, "2. Fix crash on save") {
		t.Errorf("user prompt = %q", body.Messages[1].Content)
	}
}

func TestProviders(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range Providers {
		if seen[p.ID] {
			t.Errorf("duplicate provider %q", p.ID)
		}
		seen[p.ID] = true
		if p.ID != CustomProvider && (p.APIURL == "" || len(p.Models) == 0) {
			t.Errorf("provider %q lacks URL or models", p.ID)
		}
	}
	if _, ok := LookupProvider(DefaultProvider); !ok {
		t.Errorf("default provider %q missing", DefaultProvider)
	}
	if DefaultModelFor(DefaultProvider) != DefaultModel {
		t.Errorf("DefaultModelFor(%q) = %q", DefaultProvider, DefaultModelFor(DefaultProvider))
	}
}
