package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/iksnae/git-weekly/internal/export"
	"github.com/iksnae/git-weekly/testutil"
)

func TestParseCommand_Stdin(t *testing.T) {
	config, _ := writeTestConfig(t, "")

	out, err := executeWithInput(t, testutil.PipeLog, "parse", "--config", config)
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	if !strings.Contains(out, "1. Add weekly report export") || !strings.Contains(out, "2. Fix date range on Sundays") {
		t.Errorf("parse output =\n%s", out)
	}
	if strings.Contains(out, "## ") {
		t.Errorf("pasted logs should render a flat report:\n%s", out)
	}
}

func TestParseCommand_DuplicatePaste(t *testing.T) {
	config, _ := writeTestConfig(t, "")

	out, err := executeWithInput(t, testutil.PipeLog+testutil.PipeLog, "parse", "--config", config)
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	if strings.Count(out, "Add weekly report export") != 1 || strings.Contains(out, "3.") {
		t.Errorf("duplicate commits not removed:\n%s", out)
	}
}

func TestParseCommand_File(t *testing.T) {
	config, _ := writeTestConfig(t, "")
	logFile := testutil.WriteFile(t, testutil.CreateTempDir(t), "log.txt", testutil.VerboseLog)

	out, err := execute(t, "parse", logFile, "--config", config, "--format", "json")
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}

	var doc struct {
		Total        int `json:"total"`
		Repositories []struct {
			Path string `json:"path"`
		} `json:"repositories"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if doc.Total != 2 || len(doc.Repositories) != 1 || doc.Repositories[0].Path != logFile {
		t.Errorf("document = %+v", doc)
	}
}

func TestParseCommand_Empty(t *testing.T) {
	config, _ := writeTestConfig(t, "")

	out, err := executeWithInput(t, "nothing that looks like a commit\n", "parse", "--config", config)
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	if strings.TrimSpace(out) != export.NoCommitsSentence {
		t.Errorf("parse output = %q", out)
	}
}

func TestParseCommand_Errors(t *testing.T) {
	config, _ := writeTestConfig(t, "")

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"parse", "/nonexistent/log.txt", "--config", config}},
		{"unknown format", []string{"parse", "--format", "csv", "--config", config}},
		{"too many args", []string{"parse", "a", "b", "--config", config}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := executeWithInput(t, testutil.OnelineLog, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}
