package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	repoHistoryKey = "repo_path_history"
	// MaxRepoHistory bounds the number of remembered repository paths
	MaxRepoHistory = 10
)

// RepoHistory remembers recently used repository paths, most recent first
type RepoHistory struct {
	store Store
}

// NewRepoHistory creates a history over the given store
func NewRepoHistory(store Store) *RepoHistory {
	return &RepoHistory{store: store}
}

// List returns remembered paths, most recent first. A missing or corrupt entry reads as empty.
func (h *RepoHistory) List(ctx context.Context) ([]string, error) {
	raw, err := h.store.Get(ctx, repoHistoryKey)
	if errors.Is(err, ErrKeyNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var paths []string
	if err := json.Unmarshal([]byte(raw), &paths); err != nil {
		LogWarn("Ignoring corrupt repository history: %v", err)
		return []string{}, nil
	}
	return paths, nil
}

// Add moves path to the front of the history, dropping the oldest entries beyond MaxRepoHistory
func (h *RepoHistory) Add(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}

	paths, err := h.List(ctx)
	if err != nil {
		return err
	}

	updated := make([]string, 0, len(paths)+1)
	updated = append(updated, path)
	for _, p := range paths {
		if p != path {
			updated = append(updated, p)
		}
	}
	if len(updated) > MaxRepoHistory {
		updated = updated[:MaxRepoHistory]
	}

	data, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	return h.store.Set(ctx, repoHistoryKey, string(data))
}

// Clear forgets every remembered path
func (h *RepoHistory) Clear(ctx context.Context) error {
	return h.store.Delete(ctx, repoHistoryKey)
}
