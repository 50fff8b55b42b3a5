package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Platform identifies a git hosting service
type Platform string

const (
	PlatformGitHub Platform = "github"
	PlatformGitLab Platform = "gitlab"
	PlatformGitee  Platform = "gitee"
	PlatformCodeup Platform = "codeup"
)

const remotePageSize = "100"

var sshURLRegex = regexp.MustCompile(`^git@([^:]+):(.+?)(\.git)?$`)

// RepoInfo is the result of parsing a repository URL
type RepoInfo struct {
	Owner          string
	Repo           string
	Platform       Platform
	OrganizationID string // Codeup only
	FullPath       string // Codeup only: group/repo
}

// ParseRepoURL parses HTTPS and SSH repository URLs of the supported hosting platforms.
//
//	https://github.com/owner/repo(.git)
//	git@github.com:owner/repo.git
//	https://codeup.aliyun.com/{organizationId}/{group}/{repo}
//	git@codeup.aliyun.com:{organizationId}/{group}/{repo}.git
func ParseRepoURL(raw string) (*RepoInfo, error) {
	raw = strings.TrimSpace(raw)

	var host string
	var parts []string
	if strings.HasPrefix(raw, "git@") {
		m := sshURLRegex.FindStringSubmatch(raw)
		if m == nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRepoURL, raw)
		}
		host = m[1]
		parts = strings.Split(m[2], "/")
	} else {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRepoURL, raw)
		}
		host = u.Host
		for _, p := range strings.Split(u.Path, "/") {
			if p != "" {
				parts = append(parts, p)
			}
		}
	}

	info := &RepoInfo{Platform: PlatformGitHub}
	switch {
	case strings.Contains(host, "codeup.aliyun.com"):
		info.Platform = PlatformCodeup
		switch {
		case len(parts) >= 3:
			info.OrganizationID = parts[0]
			info.Owner = parts[1]
			info.Repo = strings.TrimSuffix(parts[2], ".git")
			info.FullPath = info.Owner + "/" + info.Repo
		case len(parts) == 2:
			info.OrganizationID = parts[0]
			info.Repo = strings.TrimSuffix(parts[1], ".git")
			info.FullPath = info.Repo
		}
		if info.Repo == "" {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRepoURL, raw)
		}
		return info, nil
	case strings.Contains(host, "gitlab"):
		info.Platform = PlatformGitLab
	case strings.Contains(host, "gitee"):
		info.Platform = PlatformGitee
	}

	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRepoURL, raw)
	}
	info.Owner = parts[0]
	info.Repo = strings.TrimSuffix(parts[1], ".git")
	if info.Owner == "" || info.Repo == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRepoURL, raw)
	}
	return info, nil
}

// RemoteEndpoints are the API base URLs of each platform
type RemoteEndpoints struct {
	GitHub string `mapstructure:"github"`
	GitLab string `mapstructure:"gitlab"`
	Gitee  string `mapstructure:"gitee"`
	Codeup string `mapstructure:"codeup"`
}

// DefaultRemoteEndpoints returns the public API endpoints
func DefaultRemoteEndpoints() RemoteEndpoints {
	return RemoteEndpoints{
		GitHub: "https://api.github.com",
		GitLab: "https://gitlab.com",
		Gitee:  "https://gitee.com",
		Codeup: "https://codeup.aliyun.com",
	}
}

// RemoteFetcher fetches commits from hosting REST APIs. FetchQuery.RepoPath holds the repository URL.
type RemoteFetcher struct {
	Client     *http.Client
	Endpoints  RemoteEndpoints
	Token      string
	normalizer *Normalizer
}

// NewRemoteFetcher creates a fetcher against the public endpoints
func NewRemoteFetcher(token string) *RemoteFetcher {
	return &RemoteFetcher{
		Client:     &http.Client{Timeout: 30 * time.Second},
		Endpoints:  DefaultRemoteEndpoints(),
		Token:      token,
		normalizer: NewNormalizer(),
	}
}

// FetchCommits fetches up to one page of commits for the repository URL in q.RepoPath
func (f *RemoteFetcher) FetchCommits(ctx context.Context, q FetchQuery) ([]CommitRecord, error) {
	commits, err := f.fetch(ctx, q)
	if err != nil {
		return nil, &FetchError{Repo: q.RepoPath, Author: q.Author, Err: err}
	}
	return commits, nil
}

func (f *RemoteFetcher) fetch(ctx context.Context, q FetchQuery) ([]CommitRecord, error) {
	info, err := ParseRepoURL(q.RepoPath)
	if err != nil {
		return nil, err
	}
	if f.normalizer == nil {
		f.normalizer = NewNormalizer()
	}

	switch info.Platform {
	case PlatformGitHub:
		return f.fetchGitHub(ctx, info, q)
	case PlatformGitee:
		return f.fetchGitee(ctx, info, q)
	case PlatformGitLab:
		return f.fetchGitLab(ctx, info, q)
	case PlatformCodeup:
		return f.fetchCodeup(ctx, info, q)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, info.Platform)
	}
}

// apiCommit is the commit shape shared by the GitHub and Gitee APIs
type apiCommit struct {
	SHA     string `json:"sha"`
	HTMLURL string `json:"html_url"`
	Commit  struct {
		Message string `json:"message"`
		Author  struct {
			Name string `json:"name"`
			Date string `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// gitlabCommit is the commit shape of the GitLab and Codeup APIs
type gitlabCommit struct {
	ID          string `json:"id"`
	ShortID     string `json:"short_id"`
	Title       string `json:"title"`
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
	CreatedAt   string `json:"created_at"`
	WebURL      string `json:"web_url"`
}

func (f *RemoteFetcher) fetchGitHub(ctx context.Context, info *RepoInfo, q FetchQuery) ([]CommitRecord, error) {
	params := rangeParams(q)
	header := http.Header{"Accept": {"application/vnd.github.v3+json"}}
	if f.Token != "" {
		header.Set("Authorization", "token "+f.Token)
	}

	endpoint := fmt.Sprintf("%s/repos/%s/%s/commits?%s", f.Endpoints.GitHub, info.Owner, info.Repo, params.Encode())
	var items []apiCommit
	if err := f.getJSON(ctx, endpoint, header, &items); err != nil {
		return nil, err
	}
	return f.fromAPICommits(items), nil
}

func (f *RemoteFetcher) fetchGitee(ctx context.Context, info *RepoInfo, q FetchQuery) ([]CommitRecord, error) {
	params := rangeParams(q)
	if f.Token != "" {
		params.Set("access_token", f.Token)
	}

	endpoint := fmt.Sprintf("%s/api/v5/repos/%s/%s/commits?%s", f.Endpoints.Gitee, info.Owner, info.Repo, params.Encode())
	var items []apiCommit
	if err := f.getJSON(ctx, endpoint, nil, &items); err != nil {
		return nil, err
	}
	return f.fromAPICommits(items), nil
}

func (f *RemoteFetcher) fetchGitLab(ctx context.Context, info *RepoInfo, q FetchQuery) ([]CommitRecord, error) {
	params := rangeParams(q)
	header := http.Header{}
	if f.Token != "" {
		header.Set("PRIVATE-TOKEN", f.Token)
	}

	projectID := url.PathEscape(info.Owner + "/" + info.Repo)
	endpoint := fmt.Sprintf("%s/api/v4/projects/%s/repository/commits?%s", f.Endpoints.GitLab, projectID, params.Encode())
	var items []gitlabCommit
	if err := f.getJSON(ctx, endpoint, header, &items); err != nil {
		return nil, err
	}

	commits := make([]CommitRecord, 0, len(items))
	for _, item := range items {
		commits = append(commits, f.normalizer.NormalizeCommit(item.ShortID, item.Title, item.AuthorName, item.CreatedAt, item.WebURL))
	}
	return commits, nil
}

// fetchCodeup requires a token; the API has no author filter so it is applied here
func (f *RemoteFetcher) fetchCodeup(ctx context.Context, info *RepoInfo, q FetchQuery) ([]CommitRecord, error) {
	if f.Token == "" {
		return nil, fmt.Errorf("codeup requires a personal access token")
	}
	if info.OrganizationID == "" {
		return nil, fmt.Errorf("%w: missing codeup organization id", ErrInvalidRepoURL)
	}

	repoPath := info.FullPath
	if repoPath == "" {
		repoPath = info.Repo
	}

	params := url.Values{}
	params.Set("per_page", remotePageSize)
	params.Set("private_token", f.Token)
	if since, ok := dayBound(q.Since, false); ok {
		params.Set("since", since)
	}
	if until, ok := dayBound(q.Until, true); ok {
		params.Set("until", until)
	}
	header := http.Header{
		"PRIVATE-TOKEN": {f.Token},
		"Authorization": {"Bearer " + f.Token},
	}

	endpoint := fmt.Sprintf("%s/%s/%s/-/api/commits?%s", f.Endpoints.Codeup, info.OrganizationID, repoPath, params.Encode())
	var items []gitlabCommit
	if err := f.getJSON(ctx, endpoint, header, &items); err != nil {
		return nil, fmt.Errorf("%w (use a local clone instead: git log --pretty=format:\"%%h|%%s|%%an|%%ai\")", err)
	}

	author := strings.ToLower(q.Author)
	commits := make([]CommitRecord, 0, len(items))
	for _, item := range items {
		if author != "" &&
			!strings.Contains(strings.ToLower(item.AuthorName), author) &&
			!strings.Contains(strings.ToLower(item.AuthorEmail), author) {
			continue
		}
		sha := item.ShortID
		if sha == "" && len(item.ID) >= 8 {
			sha = item.ID[:8]
		}
		webURL := item.WebURL
		if webURL == "" {
			webURL = fmt.Sprintf("%s/%s/%s/commit/%s", f.Endpoints.Codeup, info.OrganizationID, repoPath, item.ID)
		}
		record := f.normalizer.NormalizeCommit(item.ID, item.Title, item.AuthorName, item.CreatedAt, webURL)
		record.Hash = sha
		commits = append(commits, record)
	}
	return commits, nil
}

func (f *RemoteFetcher) fromAPICommits(items []apiCommit) []CommitRecord {
	commits := make([]CommitRecord, 0, len(items))
	for _, item := range items {
		commits = append(commits, f.normalizer.NormalizeCommit(
			item.SHA, item.Commit.Message, item.Commit.Author.Name, item.Commit.Author.Date, item.HTMLURL))
	}
	return commits
}

func (f *RemoteFetcher) getJSON(ctx context.Context, endpoint string, header http.Header, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	for k, values := range header {
		for _, value := range values {
			req.Header.Add(k, value)
		}
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%s", apiErr.Message)
		}
		return fmt.Errorf("failed to fetch commits: %s", resp.Status)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("unexpected response format: %w", err)
	}
	return nil
}

// rangeParams builds the since/until/author/per_page query shared by GitHub, Gitee and GitLab
func rangeParams(q FetchQuery) url.Values {
	params := url.Values{}
	if since, ok := dayBound(q.Since, false); ok {
		params.Set("since", since)
	}
	if until, ok := dayBound(q.Until, true); ok {
		params.Set("until", until)
	}
	params.Set("per_page", remotePageSize)
	if q.Author != "" {
		params.Set("author", q.Author)
	}
	return params
}

// dayBound converts a YYYY-MM-DD date to the start (or end) of that local day in RFC3339 UTC
func dayBound(day string, end bool) (string, bool) {
	if day == "" {
		return "", false
	}
	t, err := time.ParseInLocation(DateLayout, day, time.Local)
	if err != nil {
		ts, ok := ParseCommitTime(day)
		if !ok {
			return "", false
		}
		t = ts
	}
	if end {
		t = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, t.Location())
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z"), true
}
