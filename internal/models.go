package internal

// AllBranches is the branch selection meaning "do not restrict to one named branch"
const AllBranches = "__all__"

// CommitRecord represents one commit as shown in a weekly report
type CommitRecord struct {
	Hash    string `json:"sha" yaml:"sha"`
	Message string `json:"message" yaml:"message"`
	Author  string `json:"author" yaml:"author"`
	Date    string `json:"date" yaml:"date"`
	URL     string `json:"url,omitempty" yaml:"url,omitempty"`
	Branch  string `json:"branch,omitempty" yaml:"branch,omitempty"` // empty when fetched across all branches
}

// RepositorySelection is one configured repository plus the branches to query
type RepositorySelection struct {
	Path             string   `json:"path" yaml:"path" mapstructure:"path"`
	SelectedBranches []string `json:"branches,omitempty" yaml:"branches,omitempty" mapstructure:"branches"`
	CurrentBranch    string   `json:"current_branch,omitempty" yaml:"current_branch,omitempty" mapstructure:"-"`
}

// BranchesToFetch returns the selected branches, or the all-branches sentinel when none are selected
func (r RepositorySelection) BranchesToFetch() []string {
	if len(r.SelectedBranches) == 0 {
		return []string{AllBranches}
	}
	return r.SelectedBranches
}

// FetchWarning records one (repository, branch, author) fetch that failed and was skipped
type FetchWarning struct {
	Repo   string
	Branch string
	Author string
	Err    error
}

// RepoCommits is one repository entry of an AggregationResult
type RepoCommits struct {
	Path    string         `json:"path" yaml:"path"`
	Commits []CommitRecord `json:"commits" yaml:"commits"`
}

// AggregationResult maps repository paths to their commits, in configuration order
type AggregationResult struct {
	Repos    []RepoCommits  `json:"repositories" yaml:"repositories"`
	Warnings []FetchWarning `json:"-" yaml:"-"`
}

// NewAggregationResult creates an empty result
func NewAggregationResult() *AggregationResult {
	return &AggregationResult{Repos: make([]RepoCommits, 0)}
}

// Put sets the commits for a repository, appending it if it is not yet present
func (r *AggregationResult) Put(path string, commits []CommitRecord) {
	if commits == nil {
		commits = []CommitRecord{}
	}
	for i := range r.Repos {
		if r.Repos[i].Path == path {
			r.Repos[i].Commits = commits
			return
		}
	}
	r.Repos = append(r.Repos, RepoCommits{Path: path, Commits: commits})
}

// Paths returns repository paths in insertion order
func (r *AggregationResult) Paths() []string {
	paths := make([]string, 0, len(r.Repos))
	for _, repo := range r.Repos {
		paths = append(paths, repo.Path)
	}
	return paths
}

// Commits returns the commits for a repository and whether it was queried at all
func (r *AggregationResult) Commits(path string) ([]CommitRecord, bool) {
	for _, repo := range r.Repos {
		if repo.Path == path {
			return repo.Commits, true
		}
	}
	return nil, false
}

// All flattens every repository's commits in repository order
func (r *AggregationResult) All() []CommitRecord {
	all := make([]CommitRecord, 0, r.Total())
	for _, repo := range r.Repos {
		all = append(all, repo.Commits...)
	}
	return all
}

// Total returns the number of commits across all repositories
func (r *AggregationResult) Total() int {
	n := 0
	for _, repo := range r.Repos {
		n += len(repo.Commits)
	}
	return n
}

// IsEmpty reports whether no repository yielded any commit
func (r *AggregationResult) IsEmpty() bool {
	return r.Total() == 0
}
