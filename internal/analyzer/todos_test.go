package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/repolens/repolens/internal/report"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return root
}

func TestScan(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.go":        "package a\n\n// TODO: fix leak\nvar x int\n// todo lowercase\n",
		"b.go":        "package b\n",
		"sub/c.go":    "package c\n// ToDo: later\n",
		"notes.txt":   "TODO not scanned\n",
		".git/config": "TODO skipped dir\n",
	})

	analyzed, files, err := scan(root, regexp.MustCompile(`\.go$`))
	if err != nil {
		t.Fatalf("scan() error = %v", err)
	}

	if analyzed != 3 {
		t.Errorf("analyzed = %d, want 3", analyzed)
	}
	if len(files) != 2 {
		t.Fatalf("files with TODOs = %d, want 2", len(files))
	}

	a := files[0]
	if a.Path != "a.go" {
		t.Errorf("files[0].Path = %q, want a.go", a.Path)
	}
	if len(a.Matches) != 2 {
		t.Fatalf("a.go matches = %d, want 2", len(a.Matches))
	}
	if a.Matches[0].Line != 3 || a.Matches[0].Text != "// TODO: fix leak" {
		t.Errorf("unexpected first match %+v", a.Matches[0])
	}
	if a.Matches[1].Line != 5 || a.Matches[1].Text != "// todo lowercase" {
		t.Errorf("unexpected second match %+v", a.Matches[1])
	}

	c := files[1]
	if c.Path != "sub/c.go" {
		t.Errorf("files[1].Path = %q, want sub/c.go", c.Path)
	}
	if len(c.Matches) != 1 || c.Matches[0].Line != 2 {
		t.Errorf("unexpected sub/c.go matches %+v", c.Matches)
	}
}

func TestScan_TrimsMatchedLines(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.go": "package a\n\t\t// TODO: indented\n",
	})

	_, files, err := scan(root, regexp.MustCompile(`\.go$`))
	if err != nil {
		t.Fatalf("scan() error = %v", err)
	}
	if len(files) != 1 || files[0].Matches[0].Text != "// TODO: indented" {
		t.Errorf("matched text not trimmed: %+v", files)
	}
}

func TestScan_NoMatches(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.go": "package a\n",
	})

	analyzed, files, err := scan(root, regexp.MustCompile(`\.go$`))
	if err != nil {
		t.Fatalf("scan() error = %v", err)
	}
	if analyzed != 1 {
		t.Errorf("analyzed = %d, want 1", analyzed)
	}
	if len(files) != 0 {
		t.Errorf("files = %+v, want none", files)
	}
}

func TestTodosAnalyzer_BranchFallback(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.go": "package main\n// TODO: wire flags\n",
	})

	cfg := testConfig(t)
	cfg.Todos.Path = root
	cfg.Todos.Branch = "main"

	a, err := NewTodosAnalyzer(cfg, report.NewWriter(cfg.Report.OutputDir))
	if err != nil {
		t.Fatalf("NewTodosAnalyzer() error = %v", err)
	}

	// The scanned tree is not a git checkout, so links fall back to
	// the configured branch.
	path, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "code_quality_analysis_testorg_testrepo_") {
		t.Errorf("unexpected report name %q", base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	content := string(data)

	wantLines := []string{
		"# Technical Debt Analysis Report for testorg/testrepo\n",
		"* Number of analyzed files: 1\n",
		"* Number of files with TODO's: 1\n",
		"1. [main.go#L2](https://github.com/testorg/testrepo/blob/main/main.go#L2): // TODO: wire flags\n",
	}
	for _, want := range wantLines {
		if !strings.Contains(content, want) {
			t.Errorf("report missing %q:\n%s", want, content)
		}
	}
}

func TestTodosAnalyzer_InvalidPattern(t *testing.T) {
	cfg := testConfig(t)
	cfg.Todos.Path = t.TempDir()
	cfg.Todos.Pattern = "(["

	a, err := NewTodosAnalyzer(cfg, report.NewWriter(cfg.Report.OutputDir))
	if err != nil {
		t.Fatalf("NewTodosAnalyzer() error = %v", err)
	}

	if _, err := a.Run(context.Background()); err == nil || !strings.Contains(err.Error(), "invalid file pattern") {
		t.Fatalf("Run() error = %v, want invalid file pattern", err)
	}
}

func TestTodosAnalyzer_MissingPath(t *testing.T) {
	cfg := testConfig(t)
	cfg.Todos.Path = filepath.Join(t.TempDir(), "does-not-exist")

	a, err := NewTodosAnalyzer(cfg, report.NewWriter(cfg.Report.OutputDir))
	if err != nil {
		t.Fatalf("NewTodosAnalyzer() error = %v", err)
	}

	if _, err := a.Run(context.Background()); err == nil || !strings.Contains(err.Error(), "not accessible") {
		t.Fatalf("Run() error = %v, want not accessible", err)
	}
}
