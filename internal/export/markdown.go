package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/git-weekly/internal"
)

// NoCommitsSentence is the whole report when there is nothing to list
const NoCommitsSentence = "No commits found for this period."

// GenerateWeeklyReport renders the draft weekly report.
//
// With a non-empty grouped result it writes one "## <repo>" section per repository
// that has commits, in result order. Otherwise it numbers commits in the order given.
// Commits are never re-sorted here.
func GenerateWeeklyReport(commits []internal.CommitRecord, grouped *internal.AggregationResult) string {
	if grouped != nil && len(grouped.Repos) > 0 {
		var sections []string
		for _, repo := range grouped.Repos {
			if len(repo.Commits) == 0 {
				continue
			}
			sections = append(sections, "## "+internal.RepoName(repo.Path)+"\n"+numberedList(repo.Commits))
		}
		if len(sections) == 0 {
			return NoCommitsSentence
		}
		return strings.Join(sections, "\n\n")
	}

	if len(commits) == 0 {
		return NoCommitsSentence
	}
	return numberedList(commits)
}

func numberedList(commits []internal.CommitRecord) string {
	lines := make([]string, 0, len(commits))
	for i, c := range commits {
		lines = append(lines, FormatCommitLine(i+1, c))
	}
	return strings.Join(lines, "\n")
}

// FormatCommitLine renders "N. message [branch] (date)"; the branch is omitted when empty
func FormatCommitLine(n int, c internal.CommitRecord) string {
	branch := ""
	if c.Branch != "" {
		branch = fmt.Sprintf(" [%s]", c.Branch)
	}
	return fmt.Sprintf("%d. %s%s (%s)", n, c.Message, branch, internal.DatePart(c.Date))
}

// MarkdownExporter writes the weekly report
type MarkdownExporter struct{}

// Export writes the grouped weekly report followed by a newline
func (e *MarkdownExporter) Export(result *internal.AggregationResult, w io.Writer) error {
	var commits []internal.CommitRecord
	if result != nil {
		commits = result.All()
	}
	_, err := fmt.Fprintln(w, GenerateWeeklyReport(commits, result))
	return err
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
