package analyzer

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/github"
	"github.com/repolens/repolens/internal/report"
)

var todoPattern = regexp.MustCompile(`(?i)TODO`)

// TodosAnalyzer scans a local checkout for TODO markers.
type TodosAnalyzer struct {
	cfg    *config.Config
	writer *report.Writer
	org    string
	repo   string
}

// NewTodosAnalyzer creates the technical debt analyzer.
func NewTodosAnalyzer(cfg *config.Config, writer *report.Writer) (*TodosAnalyzer, error) {
	org, repo, err := github.ParseRepo(cfg.GitHub.Repository)
	if err != nil {
		return nil, err
	}

	return &TodosAnalyzer{
		cfg:    cfg,
		writer: writer,
		org:    org,
		repo:   repo,
	}, nil
}

// Name identifies this analyzer.
func (a *TodosAnalyzer) Name() string {
	return "todos"
}

// Run scans the configured path and writes the technical debt report.
// File links are pinned to the checkout's HEAD commit.
func (a *TodosAnalyzer) Run(ctx context.Context) (string, error) {
	root, err := filepath.Abs(a.cfg.Todos.Path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve scan path: %w", err)
	}
	if _, err := os.Stat(root); err != nil {
		return "", fmt.Errorf("scan path %s is not accessible: %w", root, err)
	}

	pattern, err := regexp.Compile(a.cfg.Todos.Pattern)
	if err != nil {
		return "", fmt.Errorf("invalid file pattern: %w", err)
	}

	commit, err := headCommit(ctx, root)
	if err != nil {
		if a.cfg.Todos.Branch == "" {
			return "", err
		}
		log.Warn().Err(err).Str("branch", a.cfg.Todos.Branch).Msg("Cannot resolve HEAD, linking against branch")
		commit = a.cfg.Todos.Branch
	}

	log.Info().Str("path", root).Str("commit", commit).Msg("Scanning for TODO markers")

	analyzed, files, err := scan(root, pattern)
	if err != nil {
		return "", err
	}
	if analyzed == 0 {
		return "", fmt.Errorf("no files matching %q under %s", a.cfg.Todos.Pattern, root)
	}

	log.Info().Int("files", analyzed).Int("withTodos", len(files)).Msg("Scan finished")

	content := report.TodosReport(a.org, a.repo, commit, analyzed, files)
	name := report.Filename(report.PrefixTodos, a.org, a.repo, time.Now())
	path, err := a.writer.Write(name, content)
	if err != nil {
		return "", err
	}

	log.Info().Str("path", path).Msg("Report generated")
	return path, nil
}

// headCommit resolves the checked out revision of the scan root.
func headCommit(ctx context.Context, root string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "HEAD")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to resolve git commit in %s: %w", root, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// scan walks root and collects TODO matches from files whose name
// matches pattern. It returns the number of files scanned.
func scan(root string, pattern *regexp.Regexp) (int, []report.TodoFile, error) {
	var analyzed int
	var files []report.TodoFile

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !pattern.MatchString(d.Name()) {
			return nil
		}

		analyzed++
		matches, err := scanFile(path)
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, report.TodoFile{Path: filepath.ToSlash(rel), Matches: matches})
		return nil
	})
	if err != nil {
		return 0, nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	return analyzed, files, nil
}

// scanFile records every line of one file containing a TODO marker,
// case-insensitive.
func scanFile(path string) ([]report.TodoMatch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var matches []report.TodoMatch
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if todoPattern.MatchString(text) {
			matches = append(matches, report.TodoMatch{Line: line, Text: strings.TrimSpace(text)})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return matches, nil
}
