package internal

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// CreateTestCommit creates a CommitRecord with a derived message and author
func CreateTestCommit(hash, date string) CommitRecord {
	return CommitRecord{
		Hash:    hash,
		Message: "commit " + hash,
		Author:  "Test User",
		Date:    date,
	}
}

// StubFetcher is a Fetcher returning canned commits keyed by repository, branch and author
type StubFetcher struct {
	mu      sync.Mutex
	Results map[string][]CommitRecord
	Errors  map[string]error
	Calls   []FetchQuery
}

// NewStubFetcher creates an empty StubFetcher
func NewStubFetcher() *StubFetcher {
	return &StubFetcher{
		Results: make(map[string][]CommitRecord),
		Errors:  make(map[string]error),
	}
}

// StubKey builds the lookup key used by StubFetcher
func StubKey(repo, branch, author string) string {
	return strings.Join([]string{repo, branch, author}, "|")
}

// On registers commits for a combination
func (f *StubFetcher) On(repo, branch, author string, commits ...CommitRecord) *StubFetcher {
	f.Results[StubKey(repo, branch, author)] = commits
	return f
}

// Fail registers an error for a combination
func (f *StubFetcher) Fail(repo, branch, author string, err error) *StubFetcher {
	f.Errors[StubKey(repo, branch, author)] = err
	return f
}

func (f *StubFetcher) FetchCommits(_ context.Context, q FetchQuery) ([]CommitRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, q)

	key := StubKey(q.RepoPath, q.Branch, q.Author)
	if err, ok := f.Errors[key]; ok {
		return nil, &FetchError{Repo: q.RepoPath, Branch: q.Branch, Author: q.Author, Err: err}
	}
	out := make([]CommitRecord, len(f.Results[key]))
	copy(out, f.Results[key])
	return out, nil
}

// StubRunner is a GitRunner replaying canned output per argument list
type StubRunner struct {
	Outputs map[string]string
	Errors  map[string]error
	Calls   [][]string
}

// NewStubRunner creates an empty StubRunner
func NewStubRunner() *StubRunner {
	return &StubRunner{Outputs: make(map[string]string), Errors: make(map[string]error)}
}

func (r *StubRunner) Run(_ context.Context, _ string, args ...string) ([]byte, error) {
	r.Calls = append(r.Calls, args)
	key := strings.Join(args, " ")
	if err, ok := r.Errors[key]; ok {
		return nil, err
	}
	if out, ok := r.Outputs[key]; ok {
		return []byte(out), nil
	}
	return nil, fmt.Errorf("unexpected git call: %s", key)
}
