// Package analyzer implements the repository analyzers behind the CLI
// commands. Each analyzer collects its data, analyzes it and writes one
// markdown report, returning the report path.
package analyzer

import (
	"context"
	"time"

	"github.com/repolens/repolens/internal/github"
	"github.com/repolens/repolens/pkg/models"
)

// Analyzer produces one report for a repository.
type Analyzer interface {
	Name() string
	Run(ctx context.Context) (string, error)
}

// GitHub is the subset of the GitHub client the analyzers use.
type GitHub interface {
	RepoExists(ctx context.Context, org, repo string) (bool, error)
	ListOpenIssues(ctx context.Context, org, repo string) ([]*models.Issue, error)
	ListClosedIssues(ctx context.Context, org, repo string, since time.Time, label string) ([]*models.Issue, error)
	ListComments(ctx context.Context, org, repo string, number int) ([]github.Comment, error)
}
