package export

import (
	"io"

	"github.com/iksnae/git-weekly/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports results in YAML format
type YAMLExporter struct{}

// Export exports the result to YAML format
func (e *YAMLExporter) Export(result *internal.AggregationResult, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(newDocument(result))
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
