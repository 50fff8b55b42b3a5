package export

import (
	"fmt"
	"testing"

	"github.com/iksnae/git-weekly/internal"
)

func TestNewExporter(t *testing.T) {
	tests := []struct {
		format   string
		wantType string
		wantExt  string
		wantErr  bool
	}{
		{"jsonl", "*export.JSONLExporter", "jsonl", false},
		{"md", "*export.MarkdownExporter", "md", false},
		{"markdown", "*export.MarkdownExporter", "md", false},
		{"yaml", "*export.YAMLExporter", "yaml", false},
		{"yml", "*export.YAMLExporter", "yaml", false},
		{"json", "*export.JSONExporter", "json", false},
		{"xml", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			exporter, err := NewExporter(tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewExporter(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if tt.wantErr {
				if exporter != nil {
					t.Errorf("NewExporter() returned exporter %T, want nil", exporter)
				}
				return
			}

			if got := fmt.Sprintf("%T", exporter); got != tt.wantType {
				t.Errorf("NewExporter(%q) type = %s, want %s", tt.format, got, tt.wantType)
			}
			if got := exporter.Extension(); got != tt.wantExt {
				t.Errorf("Extension() = %v, want %v", got, tt.wantExt)
			}
		})
	}
}

// sampleResult has two repositories with commits and one empty repository in between
func sampleResult() *internal.AggregationResult {
	r := internal.NewAggregationResult()
	r.Put("/work/api", []internal.CommitRecord{
		{Hash: "a1", Message: "Add export", Author: "Ann", Date: "2024-01-11 10:00:00 +0800", Branch: "main"},
		{Hash: "a2", Message: "Fix login", Author: "Ann", Date: "2024-01-10 09:00:00 +0800"},
	})
	r.Put(`C:\work\empty`, nil)
	r.Put("/work/web", []internal.CommitRecord{
		{Hash: "w1", Message: "Dark mode", Author: "Bo", Date: "2024-01-09 18:00:00 +0800", Branch: "dev"},
	})
	return r
}
