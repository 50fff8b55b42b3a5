package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/git-weekly/internal"
)

// JSONExporter exports results in JSON format (pretty-printed)
type JSONExporter struct{}

// Export exports the result to JSON format
func (e *JSONExporter) Export(result *internal.AggregationResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(newDocument(result))
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
