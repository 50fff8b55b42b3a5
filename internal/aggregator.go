package internal

import (
	"context"
	"sort"
	"time"
)

// Step identifies one fetch of an aggregation run
type Step struct {
	Index  int // 1-based
	Total  int
	Repo   string
	Branch string
	Author string
}

// Aggregator collects commits for a set of repositories, branches and authors.
//
// Every (repository, branch, author) combination is fetched sequentially, in
// configuration order, so that hash de-duplication is deterministic: a commit
// reachable from several branches is attributed to the first branch queried.
type Aggregator struct {
	Fetcher Fetcher

	// OnProgress is called before each fetch
	OnProgress func(Step)
	// OnWarning is called for each combination that failed and was skipped
	OnWarning func(FetchWarning)
}

// NewAggregator creates an aggregator over the given fetcher
func NewAggregator(fetcher Fetcher) *Aggregator {
	return &Aggregator{Fetcher: fetcher}
}

// Aggregate fetches, merges and sorts commits for every repository.
// It never fails: failed fetches are reported as warnings and every repository
// appears in the result, possibly with no commits.
func (a *Aggregator) Aggregate(ctx context.Context, repos []RepositorySelection, authors []string, since, until string) *AggregationResult {
	if len(authors) == 0 {
		authors = []string{""}
	}

	total := 0
	for _, repo := range repos {
		total += len(repo.BranchesToFetch()) * len(authors)
	}

	result := NewAggregationResult()
	step := 0
	for _, repo := range repos {
		dedup := NewDeduplicator()
		merged := make([]CommitRecord, 0)

		for _, branch := range repo.BranchesToFetch() {
			for _, author := range authors {
				step++
				if a.OnProgress != nil {
					a.OnProgress(Step{Index: step, Total: total, Repo: repo.Path, Branch: branch, Author: author})
				}

				commits, err := a.Fetcher.FetchCommits(ctx, FetchQuery{
					RepoPath: repo.Path,
					Author:   author,
					Since:    since,
					Until:    until,
					Branch:   branch,
				})
				if err != nil {
					a.warn(result, FetchWarning{Repo: repo.Path, Branch: branch, Author: author, Err: err})
					continue
				}
				merged = dedup.Merge(merged, commits)
			}
		}

		SortCommits(merged)
		result.Put(repo.Path, merged)
		LogDebug("Repository %s: %d commit(s)", repo.Path, len(merged))
	}

	return result
}

func (a *Aggregator) warn(result *AggregationResult, w FetchWarning) {
	result.Warnings = append(result.Warnings, w)
	LogWarn("Failed to fetch %s (branch %s): %v", w.Repo, w.Branch, w.Err)
	if a.OnWarning != nil {
		a.OnWarning(w)
	}
}

// SortCommits orders commits newest first. Commits whose date cannot be parsed sort
// after all dated commits and keep their relative order.
func SortCommits(commits []CommitRecord) {
	type datedCommit struct {
		commit CommitRecord
		at     time.Time
		dated  bool
	}

	dated := make([]datedCommit, len(commits))
	for i, c := range commits {
		at, ok := ParseCommitTime(c.Date)
		dated[i] = datedCommit{commit: c, at: at, dated: ok}
	}

	sort.SliceStable(dated, func(i, j int) bool {
		if dated[i].dated && dated[j].dated {
			return dated[i].at.After(dated[j].at)
		}
		return dated[i].dated && !dated[j].dated
	})

	for i := range dated {
		commits[i] = dated[i].commit
	}
}
