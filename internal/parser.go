package internal

import (
	"regexp"
	"strings"
)

var (
	onelineRegex = regexp.MustCompile(`^([0-9a-f]{7,40})\s+(.+)$`)
	commitRegex  = regexp.MustCompile(`^commit\s+([0-9a-f]{40})`)
	authorRegex  = regexp.MustCompile(`^Author:\s*(.+?)\s*<`)
	dateRegex    = regexp.MustCompile(`^Date:\s*(.+)$`)
)

// lineMatcher tries to consume one line of git log output.
// It returns true when the line was recognised.
type lineMatcher func(line string, commits []*CommitRecord) ([]*CommitRecord, bool)

// matchers are tried in order; the first match wins for a line
var matchers = []lineMatcher{
	matchPipeLine,
	matchOnelineLine,
	matchCommitHeader,
	matchVerboseDetail,
}

// ParseGitLog parses pasted git log text into commit records.
//
// Supported shapes:
//
//	git log --pretty=format:"%h|%s|%an|%ai"
//	git log --oneline
//	git log   (the default verbose format)
//
// Lines that match nothing are ignored, and records that never got a message are dropped.
func ParseGitLog(text string) []CommitRecord {
	var parsed []*CommitRecord

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		for _, match := range matchers {
			var ok bool
			if parsed, ok = match(line, parsed); ok {
				break
			}
		}
	}

	commits := make([]CommitRecord, 0, len(parsed))
	for _, c := range parsed {
		if c.Message == "" {
			continue
		}
		commits = append(commits, *c)
	}

	LogDebug("Parsed %d commit(s) from git log text", len(commits))
	return commits
}

func matchPipeLine(line string, commits []*CommitRecord) ([]*CommitRecord, bool) {
	if !strings.Contains(line, "|") {
		return commits, false
	}
	parts := strings.Split(line, "|")
	if len(parts) < 4 {
		return commits, false
	}
	hash := strings.TrimSpace(parts[0])
	if hash == "" {
		return commits, false
	}
	return append(commits, &CommitRecord{
		Hash:    hash,
		Message: strings.TrimSpace(parts[1]),
		Author:  strings.TrimSpace(parts[2]),
		Date:    strings.TrimSpace(parts[3]),
	}), true
}

func matchOnelineLine(line string, commits []*CommitRecord) ([]*CommitRecord, bool) {
	m := onelineRegex.FindStringSubmatch(line)
	if m == nil {
		return commits, false
	}
	return append(commits, &CommitRecord{Hash: m[1], Message: m[2]}), true
}

func matchCommitHeader(line string, commits []*CommitRecord) ([]*CommitRecord, bool) {
	m := commitRegex.FindStringSubmatch(line)
	if m == nil {
		return commits, false
	}
	return append(commits, &CommitRecord{Hash: ShortHash(m[1])}), true
}

// matchVerboseDetail fills Author, Date and message lines into the most recent record
func matchVerboseDetail(line string, commits []*CommitRecord) ([]*CommitRecord, bool) {
	if len(commits) == 0 {
		return commits, false
	}
	last := commits[len(commits)-1]

	if m := authorRegex.FindStringSubmatch(line); m != nil {
		last.Author = m[1]
		return commits, true
	}
	if m := dateRegex.FindStringSubmatch(line); m != nil {
		last.Date = strings.TrimSpace(m[1])
		return commits, true
	}
	if strings.HasPrefix(line, "    ") && last.Message == "" {
		last.Message = strings.TrimSpace(line)
		return commits, true
	}
	return commits, false
}
