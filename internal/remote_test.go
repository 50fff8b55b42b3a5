package internal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    RepoInfo
		wantErr bool
	}{
		{
			name: "github https",
			url:  "https://github.com/acme/api.git",
			want: RepoInfo{Owner: "acme", Repo: "api", Platform: PlatformGitHub},
		},
		{
			name: "github ssh",
			url:  "git@github.com:acme/api.git",
			want: RepoInfo{Owner: "acme", Repo: "api", Platform: PlatformGitHub},
		},
		{
			name: "gitlab self-hosted",
			url:  "https://gitlab.example.com/team/service",
			want: RepoInfo{Owner: "team", Repo: "service", Platform: PlatformGitLab},
		},
		{
			name: "gitee",
			url:  "https://gitee.com/owner/repo",
			want: RepoInfo{Owner: "owner", Repo: "repo", Platform: PlatformGitee},
		},
		{
			name: "codeup with group",
			url:  "https://codeup.aliyun.com/60a1b2/backend/orders.git",
			want: RepoInfo{Owner: "backend", Repo: "orders", Platform: PlatformCodeup, OrganizationID: "60a1b2", FullPath: "backend/orders"},
		},
		{
			name: "codeup ssh without group",
			url:  "git@codeup.aliyun.com:60a1b2/orders.git",
			want: RepoInfo{Repo: "orders", Platform: PlatformCodeup, OrganizationID: "60a1b2", FullPath: "orders"},
		},
		{name: "no path", url: "https://github.com/acme", wantErr: true},
		{name: "not a url", url: "just words", wantErr: true},
		{name: "bad ssh", url: "git@github.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRepoURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRepoURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRepoURL) {
					t.Errorf("error = %v, want ErrInvalidRepoURL", err)
				}
				return
			}
			if *got != tt.want {
				t.Errorf("ParseRepoURL(%q) = %+v, want %+v", tt.url, *got, tt.want)
			}
		})
	}
}

func newTestRemoteFetcher(server *httptest.Server, token string) *RemoteFetcher {
	f := NewRemoteFetcher(token)
	f.Client = server.Client()
	f.Endpoints = RemoteEndpoints{GitHub: server.URL, GitLab: server.URL, Gitee: server.URL, Codeup: server.URL}
	f.normalizer = &Normalizer{Location: time.UTC}
	return f
}

func TestRemoteFetcher_GitHub(t *testing.T) {
	var gotPath, gotAuth string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"sha":"8f3e2a1b4c5d","html_url":"https://github.com/acme/api/commit/8f3e2a1b","commit":{"message":"Add export\n\nbody","author":{"name":"Ann Lee","date":"2024-01-10T09:15:00Z"}}}]`))
	}))
	defer server.Close()

	f := newTestRemoteFetcher(server, "secret")
	commits, err := f.FetchCommits(context.Background(), FetchQuery{
		RepoPath: "https://github.com/acme/api",
		Author:   "ann",
		Since:    "2024-01-08",
		Until:    "2024-01-14",
	})
	if err != nil {
		t.Fatalf("FetchCommits() error = %v", err)
	}

	if gotPath != "/repos/acme/api/commits" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "token secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotQuery["author"][0] != "ann" || gotQuery["per_page"][0] != "100" {
		t.Errorf("query = %v", gotQuery)
	}
	if !strings.HasSuffix(gotQuery["until"][0], "Z") || !strings.HasSuffix(gotQuery["since"][0], ".000Z") {
		t.Errorf("range = %s..%s", gotQuery["since"][0], gotQuery["until"][0])
	}

	want := CommitRecord{
		Hash:    "8f3e2a1",
		Message: "Add export",
		Author:  "Ann Lee",
		Date:    "2024-01-10 09:15:00",
		URL:     "https://github.com/acme/api/commit/8f3e2a1b",
	}
	if len(commits) != 1 || commits[0] != want {
		t.Errorf("commits = %+v, want %+v", commits, want)
	}
}

func TestRemoteFetcher_GitLabProjectPath(t *testing.T) {
	var gotURI, gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.RequestURI
		gotToken = r.Header.Get("PRIVATE-TOKEN")
		_, _ = w.Write([]byte(`[{"id":"abcdef1234","short_id":"abcdef1","title":"Fix","author_name":"Bo","created_at":"2024-01-09T18:02:11.000+08:00","web_url":"https://gitlab.com/x"}]`))
	}))
	defer server.Close()

	host := strings.TrimPrefix(server.URL, "http://")
	f := newTestRemoteFetcher(server, "pat")
	commits, err := f.FetchCommits(context.Background(), FetchQuery{RepoPath: "http://gitlab." + host + "/team/service"})
	if err != nil {
		t.Fatalf("FetchCommits() error = %v", err)
	}
	if !strings.HasPrefix(gotURI, "/api/v4/projects/team%2Fservice/repository/commits") {
		t.Errorf("request URI = %q", gotURI)
	}
	if gotToken != "pat" {
		t.Errorf("PRIVATE-TOKEN = %q", gotToken)
	}
	if len(commits) != 1 || commits[0].Hash != "abcdef1" || commits[0].Date != "2024-01-09 10:02:11" {
		t.Errorf("commits = %+v", commits)
	}
}

func TestRemoteFetcher_CodeupFiltersAuthor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("private_token") != "pat" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`[
			{"id":"1111111122","title":"Mine","author_name":"Ann Lee","author_email":"ann@x.com","created_at":"2024-01-10T09:00:00Z"},
			{"id":"2222222233","title":"Theirs","author_name":"Bo","author_email":"bo@x.com","created_at":"2024-01-10T08:00:00Z"}
		]`))
	}))
	defer server.Close()

	f := newTestRemoteFetcher(server, "pat")
	info := &RepoInfo{Platform: PlatformCodeup, OrganizationID: "org", Repo: "orders", FullPath: "orders"}
	commits, err := f.fetchCodeup(context.Background(), info, FetchQuery{Author: "ANN"})
	if err != nil {
		t.Fatalf("fetchCodeup() error = %v", err)
	}
	if len(commits) != 1 || commits[0].Message != "Mine" {
		t.Fatalf("commits = %+v", commits)
	}
	if commits[0].Hash != "11111111" {
		t.Errorf("Hash = %q, want first 8 chars of id", commits[0].Hash)
	}
	if commits[0].URL != server.URL+"/org/orders/commit/1111111122" {
		t.Errorf("URL = %q", commits[0].URL)
	}
}

func TestRemoteFetcher_CodeupRequiresToken(t *testing.T) {
	f := NewRemoteFetcher("")
	_, err := f.FetchCommits(context.Background(), FetchQuery{RepoPath: "https://codeup.aliyun.com/org/group/repo"})
	if err == nil || !strings.Contains(err.Error(), "personal access token") {
		t.Errorf("FetchCommits() error = %v", err)
	}
}

func TestRemoteFetcher_ErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"api message", http.StatusNotFound, `{"message":"Not Found"}`, "Not Found"},
		{"no message", http.StatusBadGateway, `<html>`, "failed to fetch commits: 502 Bad Gateway"},
		{"bad json on success", http.StatusOK, `{"not":"a list"}`, "unexpected response format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestRemoteFetcher(server, "").FetchCommits(context.Background(), FetchQuery{RepoPath: "https://github.com/acme/api"})
			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("error = %v, want *FetchError", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, should contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestDayBound(t *testing.T) {
	if _, ok := dayBound("", false); ok {
		t.Error("dayBound(\"\") should report no bound")
	}
	if _, ok := dayBound("soon", false); ok {
		t.Error("dayBound(\"soon\") should report no bound")
	}

	start, _ := dayBound("2024-01-08", false)
	end, _ := dayBound("2024-01-08", true)
	s, _ := time.Parse(time.RFC3339, start)
	e, _ := time.Parse(time.RFC3339, end)
	if got := e.Sub(s); got < 23*time.Hour || got >= 24*time.Hour {
		t.Errorf("day span = %v (%s..%s)", got, start, end)
	}
}
