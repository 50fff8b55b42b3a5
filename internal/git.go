package internal

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"sort"
	"strings"
)

// DefaultMaxOutputBytes caps the stdout captured from a single git invocation
const DefaultMaxOutputBytes = 10 * 1024 * 1024

// logFormat is full hash, short hash, subject, author name, author email, author date (ISO)
const logFormat = "--pretty=format:%H|%h|%s|%an|%ae|%ai"

// Fetcher returns the commits of one repository for one branch and author filter
type Fetcher interface {
	FetchCommits(ctx context.Context, q FetchQuery) ([]CommitRecord, error)
}

// FetchQuery holds the filters for a single fetch.
// Since and Until are passed to git verbatim (e.g. "2024-01-08").
type FetchQuery struct {
	RepoPath string
	Author   string
	Since    string
	Until    string
	Branch   string // a branch name, AllBranches, or empty for HEAD
}

// GitRunner executes git in a directory and returns its stdout
type GitRunner interface {
	Run(ctx context.Context, dir string, args ...string) ([]byte, error)
}

// ExecRunner runs the git binary as a child process
type ExecRunner struct {
	Binary         string
	MaxOutputBytes int
}

// NewExecRunner creates a runner for the given git binary ("git" when empty)
func NewExecRunner(binary string, maxOutputBytes int) *ExecRunner {
	if binary == "" {
		binary = "git"
	}
	if maxOutputBytes <= 0 {
		maxOutputBytes = DefaultMaxOutputBytes
	}
	return &ExecRunner{Binary: binary, MaxOutputBytes: maxOutputBytes}
}

// Run executes git with args in dir
func (r *ExecRunner) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Dir = dir

	stdout := &cappedBuffer{limit: r.MaxOutputBytes}
	var stderr bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = &stderr

	LogDebug("Running git %s in %s", strings.Join(args, " "), dir)
	if err := cmd.Run(); err != nil {
		return nil, &GitError{Args: args, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	if stdout.exceeded {
		return nil, &GitError{Args: args, Err: ErrOutputTooLarge}
	}
	return stdout.Bytes(), nil
}

// cappedBuffer keeps draining the pipe after the limit so the child never blocks,
// but remembers that output was lost.
type cappedBuffer struct {
	bytes.Buffer
	limit    int
	exceeded bool
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if b.exceeded {
		return len(p), nil
	}
	if b.limit > 0 && b.Len()+len(p) > b.limit {
		b.exceeded = true
		return len(p), nil
	}
	return b.Buffer.Write(p)
}

// GitFetcher reads commits from local repositories through the git binary
type GitFetcher struct {
	runner GitRunner
}

// NewGitFetcher creates a fetcher that invokes the given git binary
func NewGitFetcher(binary string, maxOutputBytes int) *GitFetcher {
	return NewGitFetcherWithRunner(NewExecRunner(binary, maxOutputBytes))
}

// NewGitFetcherWithRunner creates a fetcher on top of a custom runner
func NewGitFetcherWithRunner(runner GitRunner) *GitFetcher {
	return &GitFetcher{runner: runner}
}

// FetchCommits runs git log for one branch/author combination
func (g *GitFetcher) FetchCommits(ctx context.Context, q FetchQuery) ([]CommitRecord, error) {
	args := []string{"log", logFormat}

	switch q.Branch {
	case "":
	case AllBranches:
		args = append(args, "--all")
	default:
		if err := ValidateBranchName(q.Branch); err != nil {
			return nil, &FetchError{Repo: q.RepoPath, Branch: q.Branch, Author: q.Author, Err: err}
		}
		args = append(args, g.ResolveBranch(ctx, q.RepoPath, q.Branch))
	}

	if q.Since != "" {
		args = append(args, "--since="+q.Since)
	}
	if q.Until != "" {
		args = append(args, "--until="+q.Until)
	}
	if q.Author != "" {
		args = append(args, "--author="+q.Author)
	}
	args = append(args, "--")

	out, err := g.runner.Run(ctx, q.RepoPath, args...)
	if err != nil {
		return nil, &FetchError{Repo: q.RepoPath, Branch: q.Branch, Author: q.Author, Err: err}
	}

	label := q.Branch
	if label == AllBranches {
		label = ""
	}

	var commits []CommitRecord
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		commit, ok := parseLogLine(line)
		if !ok {
			LogDebug("Skipping unexpected git log line: %q", line)
			continue
		}
		commit.Branch = label
		commits = append(commits, commit)
	}

	LogDebug("Fetched %d commit(s) from %s (branch=%q author=%q)", len(commits), q.RepoPath, q.Branch, q.Author)
	return commits, nil
}

// parseLogLine parses one line of logFormat output
func parseLogLine(line string) (CommitRecord, bool) {
	parts := strings.Split(line, "|")
	if len(parts) < 6 {
		return CommitRecord{}, false
	}
	n := len(parts)
	short := strings.TrimSpace(parts[1])
	if short == "" {
		short = ShortHash(strings.TrimSpace(parts[0]))
	}
	if short == "" {
		return CommitRecord{}, false
	}
	return CommitRecord{
		Hash:    short,
		Message: strings.Join(parts[2:n-3], "|"),
		Author:  parts[n-3],
		Date:    parts[n-1],
	}, true
}

// ResolveBranch returns branch when it exists locally, origin/branch when only the
// remote-tracking ref exists, and branch unchanged otherwise.
func (g *GitFetcher) ResolveBranch(ctx context.Context, repoPath, branch string) string {
	if _, err := g.runner.Run(ctx, repoPath, "rev-parse", "--verify", "--quiet", branch); err == nil {
		return branch
	}
	remote := "origin/" + branch
	if _, err := g.runner.Run(ctx, repoPath, "rev-parse", "--verify", "--quiet", remote); err == nil {
		LogDebug("Branch %s not found locally in %s, using %s", branch, repoPath, remote)
		return remote
	}
	return branch
}

// IsGitRepo checks if the path is inside a git work tree
func (g *GitFetcher) IsGitRepo(ctx context.Context, path string) bool {
	out, err := g.runner.Run(ctx, path, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

// ListBranches returns local and remote branch names (origin/ stripped, de-duplicated)
// together with the currently checked out branch.
func (g *GitFetcher) ListBranches(ctx context.Context, path string) ([]string, string, error) {
	out, err := g.runner.Run(ctx, path, "branch", "-a", "--format=%(refname:short)")
	if err != nil {
		return nil, "", err
	}

	seen := make(map[string]bool)
	var branches []string
	for _, line := range strings.Split(string(out), "\n") {
		name := strings.TrimPrefix(strings.TrimSpace(line), "origin/")
		if name == "" || name == "origin" || name == "HEAD" || seen[name] {
			continue
		}
		seen[name] = true
		branches = append(branches, name)
	}

	head, err := g.runner.Run(ctx, path, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return branches, "", err
	}
	return branches, strings.TrimSpace(string(head)), nil
}

// ListAuthors returns the sorted unique author names across all branches
func (g *GitFetcher) ListAuthors(ctx context.Context, path string) ([]string, error) {
	out, err := g.runner.Run(ctx, path, "log", "--format=%an", "--all")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var authors []string
	for _, line := range strings.Split(string(out), "\n") {
		name := strings.TrimSpace(line)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		authors = append(authors, name)
	}
	sort.Strings(authors)
	return authors, nil
}

// Pull fetches all remotes and then pulls the current branch
func (g *GitFetcher) Pull(ctx context.Context, path string) (string, error) {
	if _, err := g.runner.Run(ctx, path, "fetch", "--all"); err != nil {
		return "", err
	}
	out, err := g.runner.Run(ctx, path, "pull")
	if err != nil {
		return "", err
	}
	msg := strings.TrimSpace(string(out))
	if msg == "" {
		msg = "Already up to date."
	}
	return msg, nil
}

// CheckGitBinary reports whether the git binary can be found
func CheckGitBinary(binary string) error {
	if binary == "" {
		binary = "git"
	}
	if _, err := exec.LookPath(binary); err != nil {
		return errors.New("git is not installed or not in PATH")
	}
	return nil
}
