// Package report renders analysis results as markdown files.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Filename prefixes for the analyzer reports.
const (
	PrefixIssues  = "issue_analysis"
	PrefixQuality = "issue_quality_analysis"
	PrefixTodos   = "code_quality_analysis"
)

const separator = "\n---------------------------------\n\n"

// Writer persists rendered reports to the configured directory.
type Writer struct {
	outputDir string
}

// NewWriter creates a report writer rooted at outputDir.
func NewWriter(outputDir string) *Writer {
	if outputDir == "" {
		outputDir = "."
	}
	return &Writer{outputDir: outputDir}
}

// Filename builds the conventional report name for a repository.
func Filename(prefix, org, repo string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s_%s.md", prefix, org, repo, now.Format("2006_01_02_15_04_05"))
}

// Write stores content under the output directory and returns the full
// report path.
func (w *Writer) Write(name, content string) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	path := filepath.Join(w.outputDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// FormatDuration renders a duration rounded to whole seconds.
func FormatDuration(d time.Duration) string {
	return d.Round(time.Second).String()
}
