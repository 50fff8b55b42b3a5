package internal

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoverRepositories finds git work trees directly under root, or root itself
// when it is one. Hidden directories are skipped and nested repositories are not searched.
func DiscoverRepositories(root string) ([]string, error) {
	if isRepoDir(root) {
		return []string{root}, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var repos []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(root, entry.Name())
		if isRepoDir(path) {
			repos = append(repos, path)
		}
	}
	sort.Strings(repos)

	LogDebug("Discovered %d repositories under %s", len(repos), root)
	return repos, nil
}

// isRepoDir reports whether dir contains a .git directory or a .git file (worktrees, submodules)
func isRepoDir(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}
