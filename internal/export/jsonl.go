package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/git-weekly/internal"
)

// JSONLExporter exports commits in JSONL format (one commit per line)
type JSONLExporter struct{}

// jsonlLine is a commit tagged with the repository it came from
type jsonlLine struct {
	Repo string `json:"repo"`
	internal.CommitRecord
}

// Export writes every commit, in repository order, as its own JSON object
func (e *JSONLExporter) Export(result *internal.AggregationResult, w io.Writer) error {
	if result == nil {
		return nil
	}

	enc := json.NewEncoder(w)
	for _, repo := range result.Repos {
		for _, commit := range repo.Commits {
			if err := enc.Encode(jsonlLine{Repo: repo.Path, CommitRecord: commit}); err != nil {
				return fmt.Errorf("failed to encode commit %s: %w", commit.Hash, err)
			}
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
