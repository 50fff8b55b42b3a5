package export

import (
	"fmt"
	"io"

	"github.com/iksnae/git-weekly/internal"
)

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(result *internal.AggregationResult, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: md, json, jsonl, yaml)", format)
	}
}

// document is the structured form shared by the JSON and YAML exporters
type document struct {
	Total        int                    `json:"total" yaml:"total"`
	Repositories []internal.RepoCommits `json:"repositories" yaml:"repositories"`
}

func newDocument(result *internal.AggregationResult) document {
	if result == nil {
		return document{Repositories: []internal.RepoCommits{}}
	}
	repos := result.Repos
	if repos == nil {
		repos = []internal.RepoCommits{}
	}
	return document{Total: result.Total(), Repositories: repos}
}
