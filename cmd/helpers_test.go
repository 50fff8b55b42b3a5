package cmd

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/git-weekly/testutil"
)

// writeTestConfig writes a config.yaml whose file store lives in a temp dir.
// It returns the config path and the store path.
func writeTestConfig(t *testing.T, extra string) (string, string) {
	t.Helper()
	dir := testutil.CreateTempDir(t)
	storePath := filepath.Join(dir, "settings.yaml")
	content := "store:\n  backend: file\n  path: " + storePath + "\n" + extra
	return testutil.WriteFile(t, dir, "config.yaml", content), storePath
}

// resetFlags restores flag variables between executions of rootCmd
func resetFlags() {
	verbose = false
	configPath = ""

	reportRepos = nil
	reportScan = ""
	reportAuthors = nil
	reportSince = ""
	reportUntil = ""
	reportFormat = "md"
	reportOut = ""
	reportCommits = false
	reportAI = aiOptions{}

	parseFormat = "md"
	parseAI = aiOptions{}

	remoteToken = ""
	remoteAuthors = nil
	remoteSince = ""
	remoteUntil = ""
	remoteFormat = "md"
	remoteAI = aiOptions{}

	historyClear = false
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var stdout, stderr bytes.Buffer
	var stdin io.Reader = strings.NewReader(input)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(stdin)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), err
}
