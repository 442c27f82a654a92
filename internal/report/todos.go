package report

import (
	"fmt"
	"strings"
)

// TodoMatch is a single TODO occurrence.
type TodoMatch struct {
	Line int
	Text string
}

// TodoFile groups the TODO occurrences of one file. Path is relative
// to the scanned root.
type TodoFile struct {
	Path    string
	Matches []TodoMatch
}

// TodosReport renders the technical debt report. The commit pins the
// file links to the revision that was scanned.
func TodosReport(org, repo, commit string, analyzed int, files []TodoFile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Technical Debt Analysis Report for %s/%s\n\n", org, repo)
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "* Number of analyzed files: %d\n", analyzed)
	fmt.Fprintf(&b, "* Number of files with TODO's: %d\n\n", len(files))

	b.WriteString("## List of files with TODO's\n\n")
	for _, f := range files {
		fmt.Fprintf(&b, "* %s\n", f.Path)
	}

	b.WriteString("\n## Detailed information about TODO's\n")
	for _, f := range files {
		fmt.Fprintf(&b, "\n### %s\n\n", f.Path)
		for i, m := range f.Matches {
			url := fmt.Sprintf("https://github.com/%s/%s/blob/%s/%s#L%d", org, repo, commit, f.Path, m.Line)
			fmt.Fprintf(&b, "%d. [%s#L%d](%s): %s\n", i+1, f.Path, m.Line, url, m.Text)
		}
	}
	return b.String()
}
