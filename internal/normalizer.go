package internal

import (
	"strings"
	"time"
)

// DisplayLayout is the timestamp format used for commit dates in reports
const DisplayLayout = "2006-01-02 15:04:05"

// commitTimeLayouts are tried in order when a commit timestamp must be compared
var commitTimeLayouts = []string{
	"2006-01-02 15:04:05 -0700", // git %ai
	time.RFC3339,
	time.RFC3339Nano,
	DisplayLayout,
	"Mon Jan 2 15:04:05 2006 -0700", // git log default Date: line
	"Mon Jan _2 15:04:05 2006 -0700",
	time.RFC1123Z,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Normalizer converts commit data coming from hosting APIs into report records
type Normalizer struct {
	// Location used when formatting API timestamps for display
	Location *time.Location
}

// NewNormalizer creates a new Normalizer formatting in the local time zone
func NewNormalizer() *Normalizer {
	return &Normalizer{Location: time.Local}
}

// NormalizeCommit builds a CommitRecord from raw API fields
func (n *Normalizer) NormalizeCommit(sha, message, author, date, url string) CommitRecord {
	return CommitRecord{
		Hash:    ShortHash(sha),
		Message: FirstLine(message),
		Author:  author,
		Date:    n.formatDate(date),
		URL:     url,
	}
}

// formatDate renders an API timestamp in DisplayLayout, leaving unknown formats as-is
func (n *Normalizer) formatDate(raw string) string {
	t, ok := ParseCommitTime(raw)
	if !ok {
		return raw
	}
	loc := n.Location
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DisplayLayout)
}

// ParseCommitTime parses a commit timestamp in any of the formats git or the hosting APIs emit
func ParseCommitTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range commitTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ShortHash abbreviates a commit hash to seven characters
func ShortHash(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

// FirstLine returns the subject line of a commit message
func FirstLine(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		message = message[:i]
	}
	return strings.TrimSpace(message)
}

// DatePart returns the portion of a display timestamp before the first space
func DatePart(date string) string {
	if i := strings.IndexByte(date, ' '); i >= 0 {
		return date[:i]
	}
	return date
}

// RepoName returns the last path segment of a repository path or URL
func RepoName(repoPath string) string {
	parts := strings.FieldsFunc(repoPath, func(r rune) bool { return r == '/' || r == '\\' })
	if len(parts) == 0 {
		return repoPath
	}
	return parts[len(parts)-1]
}
