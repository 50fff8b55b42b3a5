package internal

import (
	"testing"
	"time"
)

func TestNormalizeCommit(t *testing.T) {
	normalizer := &Normalizer{Location: time.UTC}

	got := normalizer.NormalizeCommit(
		"8f3e2a1b4c5d6e7f8091a2b3c4d5e6f708192a3b",
		"Add export\n\nLonger body here",
		"Ann Lee",
		"2024-01-10T09:15:00Z",
		"https://github.com/acme/api/commit/8f3e2a1",
	)

	want := CommitRecord{
		Hash:    "8f3e2a1",
		Message: "Add export",
		Author:  "Ann Lee",
		Date:    "2024-01-10 09:15:00",
		URL:     "https://github.com/acme/api/commit/8f3e2a1",
	}
	if got != want {
		t.Errorf("NormalizeCommit() = %+v, want %+v", got, want)
	}
}

func TestNormalizeCommit_UnknownDateKept(t *testing.T) {
	got := NewNormalizer().NormalizeCommit("abc", "msg", "a", "last tuesday", "")
	if got.Date != "last tuesday" {
		t.Errorf("Date = %q, want raw value kept", got.Date)
	}
}

func TestParseCommitTime(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"2024-01-10 09:15:00 +0800", true},
		{"2024-01-10T09:15:00Z", true},
		{"2024-01-10T09:15:00.123+08:00", true},
		{"2024-01-10 09:15:00", true},
		{"Wed Jan 10 09:15:00 2024 +0800", true},
		{"Tue Jan 9 18:02:11 2024 +0800", true},
		{"2024-01-10", true},
		{"", false},
		{"yesterday", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, ok := ParseCommitTime(tt.input)
			if ok != tt.ok {
				t.Errorf("ParseCommitTime(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
		})
	}
}

func TestParseCommitTime_Offsets(t *testing.T) {
	a, _ := ParseCommitTime("2024-01-10 09:00:00 +0800")
	b, _ := ParseCommitTime("2024-01-10T02:00:00Z")
	if !a.Before(b) {
		t.Errorf("09:00 +0800 should be before 02:00Z, got a=%v b=%v", a, b)
	}
}

func TestTextHelpers(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"short hash long", ShortHash, "8f3e2a1b4c5d", "8f3e2a1"},
		{"short hash short", ShortHash, "8f3e", "8f3e"},
		{"first line", FirstLine, "subject\nbody", "subject"},
		{"first line trimmed", FirstLine, "  subject  ", "subject"},
		{"date part", DatePart, "2024-01-10 09:15:00", "2024-01-10"},
		{"date part no space", DatePart, "2024-01-10", "2024-01-10"},
		{"repo name unix", RepoName, "/home/me/proj", "proj"},
		{"repo name trailing slash", RepoName, "/home/me/proj/", "proj"},
		{"repo name windows", RepoName, `C:\work\api`, "api"},
		{"repo name url", RepoName, "https://github.com/acme/api", "api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); got != tt.want {
				t.Errorf("%s(%q) = %q, want %q", tt.name, tt.in, got, tt.want)
			}
		})
	}
}
