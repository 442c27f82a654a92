package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/repolens/repolens/internal/cluster"
	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/embedding"
	"github.com/repolens/repolens/internal/github"
	"github.com/repolens/repolens/internal/llm"
	"github.com/repolens/repolens/internal/report"
	"github.com/repolens/repolens/pkg/models"
)

// IssuesAnalyzer groups open issues into semantic clusters.
type IssuesAnalyzer struct {
	cfg      *config.Config
	gh       GitHub
	embedder embedding.Provider
	chat     llm.Provider
	writer   *report.Writer
	org      string
	repo     string
}

// NewIssuesAnalyzer creates the issue clustering analyzer. chat may be
// nil, in which case groups stay unnamed.
func NewIssuesAnalyzer(cfg *config.Config, gh GitHub, embedder embedding.Provider, chat llm.Provider, writer *report.Writer) (*IssuesAnalyzer, error) {
	org, repo, err := github.ParseRepo(cfg.GitHub.Repository)
	if err != nil {
		return nil, err
	}

	return &IssuesAnalyzer{
		cfg:      cfg,
		gh:       gh,
		embedder: embedder,
		chat:     chat,
		writer:   writer,
		org:      org,
		repo:     repo,
	}, nil
}

// Name identifies this analyzer.
func (a *IssuesAnalyzer) Name() string {
	return "issues"
}

// Run collects open issues, clusters them by title similarity and
// writes the report.
func (a *IssuesAnalyzer) Run(ctx context.Context) (string, error) {
	set, err := a.collect(ctx)
	if err != nil {
		return "", err
	}

	groups, err := a.analyze(ctx, set)
	if err != nil {
		return "", err
	}

	content := report.IssuesReport(a.org, a.repo, groups)
	name := report.Filename(report.PrefixIssues, a.org, a.repo, time.Now())
	path, err := a.writer.Write(name, content)
	if err != nil {
		return "", err
	}

	log.Info().Str("path", path).Msg("Report generated")
	return path, nil
}

// collect fetches the open issues as a deduplicated title set.
func (a *IssuesAnalyzer) collect(ctx context.Context) (*models.IssueSet, error) {
	log.Info().Str("repo", a.cfg.GitHub.Repository).Msg("Collecting issue data")

	exists, err := a.gh.RepoExists(ctx, a.org, a.repo)
	if err != nil {
		return nil, fmt.Errorf("failed to check repository: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("repository %s/%s not found", a.org, a.repo)
	}

	issues, err := a.gh.ListOpenIssues(ctx, a.org, a.repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch open issues: %w", err)
	}

	set := models.NewIssueSet()
	for _, issue := range issues {
		set.Add(issue.Title, issue.URL)
	}
	if set.Len() == 0 {
		return nil, fmt.Errorf("no open issues found in %s/%s", a.org, a.repo)
	}

	log.Info().Int("issues", set.Len()).Msg("Collected open issues")
	return set, nil
}

// analyze embeds the titles, clusters them over a Manhattan distance
// matrix and assembles the ordered groups.
func (a *IssuesAnalyzer) analyze(ctx context.Context, set *models.IssueSet) ([]models.Group, error) {
	log.Info().Msg("Analyzing issue data")

	titles := set.Titles()
	texts := make([]string, len(titles))
	for i, title := range titles {
		texts[i] = embedding.PrepareTitle(title)
	}

	vectors, err := a.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed titles: %w", err)
	}

	for i := range vectors {
		if !cluster.NormalizeL2InPlace(vectors[i]) {
			log.Warn().Str("title", titles[i]).Msg("Embedding has zero norm")
		}
	}

	matrix, err := cluster.ManhattanMatrix(vectors)
	if err != nil {
		return nil, fmt.Errorf("failed to build distance matrix: %w", err)
	}

	labels, err := cluster.HDBSCAN(matrix, cluster.Options{
		MinClusterSize: a.cfg.Cluster.MinClusterSize,
		MinSamples:     a.cfg.Cluster.MinSamples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to cluster issues: %w", err)
	}

	urls := make([]string, len(titles))
	for i, title := range titles {
		urls[i] = set.URL(title)
	}

	groups, err := cluster.Assemble(labels, titles, urls)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble groups: %w", err)
	}

	a.nameGroups(ctx, groups)
	return groups, nil
}

// nameGroups asks the chat model for a theme per cluster. Failures are
// logged and leave the group unnamed.
func (a *IssuesAnalyzer) nameGroups(ctx context.Context, groups []models.Group) {
	if a.chat == nil {
		return
	}

	for i := range groups {
		if groups[i].IsNoise() {
			continue
		}

		titles := make([]string, len(groups[i].Entries))
		for j, entry := range groups[i].Entries {
			titles[j] = entry.Title
		}

		name, err := llm.ClusterTitle(ctx, a.chat, titles)
		if err != nil {
			log.Warn().Err(err).Int("group", i+1).Msg("Failed to generate cluster title")
			continue
		}
		groups[i].Name = name
	}
}
