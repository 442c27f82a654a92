package analyzer

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/github"
	"github.com/repolens/repolens/internal/report"
	"github.com/repolens/repolens/pkg/models"
)

// QualityAnalyzer aggregates responsiveness metrics over closed issues.
type QualityAnalyzer struct {
	cfg    *config.Config
	gh     GitHub
	writer *report.Writer
	org    string
	repo   string
}

// NewQualityAnalyzer creates the issue quality analyzer.
func NewQualityAnalyzer(cfg *config.Config, gh GitHub, writer *report.Writer) (*QualityAnalyzer, error) {
	org, repo, err := github.ParseRepo(cfg.GitHub.Repository)
	if err != nil {
		return nil, err
	}

	return &QualityAnalyzer{
		cfg:    cfg,
		gh:     gh,
		writer: writer,
		org:    org,
		repo:   repo,
	}, nil
}

// Name identifies this analyzer.
func (a *QualityAnalyzer) Name() string {
	return "quality"
}

// Run collects closed issues, computes the quality metrics and writes
// the report.
func (a *QualityAnalyzer) Run(ctx context.Context) (string, error) {
	issues, err := a.collect(ctx)
	if err != nil {
		return "", err
	}

	r := a.analyze(ctx, issues)

	name := report.Filename(report.PrefixQuality, a.org, a.repo, time.Now())
	path, err := a.writer.Write(name, r.Render())
	if err != nil {
		return "", err
	}

	log.Info().Str("path", path).Msg("Report generated")
	return path, nil
}

// collect fetches closed issues, either per configured label or from
// the recent window, and filters out the ones without signal.
func (a *QualityAnalyzer) collect(ctx context.Context) ([]*models.Issue, error) {
	log.Info().Str("repo", a.cfg.GitHub.Repository).Msg("Collecting closed issues")

	exists, err := a.gh.RepoExists(ctx, a.org, a.repo)
	if err != nil {
		return nil, fmt.Errorf("failed to check repository: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("repository %s/%s not found", a.org, a.repo)
	}

	var lists [][]*models.Issue
	if len(a.cfg.Quality.Labels) > 0 {
		for _, label := range a.cfg.Quality.Labels {
			log.Debug().Str("label", label).Msg("Fetching closed issues with label")
			issues, err := a.gh.ListClosedIssues(ctx, a.org, a.repo, time.Time{}, label)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch closed issues: %w", err)
			}
			lists = append(lists, issues)
		}
	} else {
		since := time.Now().AddDate(0, 0, -a.cfg.Quality.WindowDays)
		log.Info().Time("since", since).Msg("No label filter, fetching recently closed issues")
		issues, err := a.gh.ListClosedIssues(ctx, a.org, a.repo, since, "")
		if err != nil {
			return nil, fmt.Errorf("failed to fetch closed issues: %w", err)
		}
		lists = append(lists, issues)
	}

	var collected []*models.Issue
	for _, list := range lists {
		for _, issue := range list {
			if a.skip(issue) {
				continue
			}
			collected = append(collected, issue)
		}
	}

	if len(collected) == 0 {
		return nil, fmt.Errorf("no closed issues to analyze in %s/%s", a.org, a.repo)
	}

	log.Info().Int("issues", len(collected)).Msg("Collected closed issues")
	return collected, nil
}

// skip reports whether an issue is excluded from the metrics.
func (a *QualityAnalyzer) skip(issue *models.Issue) bool {
	for _, keyword := range a.cfg.Quality.SkipTitleKeywords {
		if strings.Contains(issue.Title, keyword) {
			return true
		}
	}
	return issue.Comments == 0 || strings.Contains(issue.URL, "/pull/")
}

// analyze computes the four metric families over the collected issues.
func (a *QualityAnalyzer) analyze(ctx context.Context, issues []*models.Issue) *report.QualityReport {
	log.Info().Int("issues", len(issues)).Msg("Analyzing issue quality")

	r := &report.QualityReport{
		Org:    a.org,
		Repo:   a.repo,
		Labels: a.cfg.Quality.Labels,
	}

	a.resolutionMetrics(issues, r)
	a.commentMetrics(ctx, issues, r)
	a.reactionMetrics(issues, r)

	return r
}

// resolutionMetrics fills the average resolution time and the issues
// that stayed open the longest.
func (a *QualityAnalyzer) resolutionMetrics(issues []*models.Issue, r *report.QualityReport) {
	var total time.Duration
	for _, issue := range issues {
		total += issue.ResolutionTime()
	}
	r.AvgResolution = total / time.Duration(len(issues))

	ranked := make([]*models.Issue, len(issues))
	copy(ranked, issues)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ResolutionTime() > ranked[j].ResolutionTime()
	})

	for _, issue := range topN(ranked, a.cfg.Quality.TopN) {
		r.LongestResolution = append(r.LongestResolution, report.Ranked{
			Title: issue.Title,
			Value: report.FormatDuration(issue.ResolutionTime()),
			URL:   issue.URL,
		})
	}
}

// commentMetrics fills the comment count metrics and the time to first
// comment, which needs one comment fetch per issue.
func (a *QualityAnalyzer) commentMetrics(ctx context.Context, issues []*models.Issue, r *report.QualityReport) {
	type firstComment struct {
		issue *models.Issue
		wait  time.Duration
	}

	var totalComments int
	var firsts []firstComment

	for _, issue := range issues {
		totalComments += issue.Comments

		comments, err := a.gh.ListComments(ctx, a.org, a.repo, issue.Number)
		if err != nil {
			log.Warn().Err(err).Int("issue", issue.Number).Msg("Failed to fetch comments")
			continue
		}
		if len(comments) == 0 {
			continue
		}

		firsts = append(firsts, firstComment{
			issue: issue,
			wait:  comments[0].CreatedAt.Sub(issue.CreatedAt),
		})
	}

	r.AvgComments = float64(totalComments) / float64(len(issues))

	if len(firsts) > 0 {
		var total time.Duration
		for _, f := range firsts {
			total += f.wait
		}
		r.AvgFirstComment = total / time.Duration(len(firsts))
	}

	sort.SliceStable(firsts, func(i, j int) bool {
		return firsts[i].wait > firsts[j].wait
	})
	if len(firsts) > a.cfg.Quality.TopN {
		firsts = firsts[:a.cfg.Quality.TopN]
	}
	for _, f := range firsts {
		r.LongestFirstComment = append(r.LongestFirstComment, report.Ranked{
			Title: f.issue.Title,
			Value: report.FormatDuration(f.wait),
			URL:   f.issue.URL,
		})
	}

	ranked := make([]*models.Issue, len(issues))
	copy(ranked, issues)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Comments > ranked[j].Comments
	})
	for _, issue := range topN(ranked, a.cfg.Quality.TopN) {
		r.MostCommented = append(r.MostCommented, report.Ranked{
			Title: issue.Title,
			Value: strconv.Itoa(issue.Comments),
			URL:   issue.URL,
		})
	}
}

// reactionMetrics fills the reaction averages and the most engaging
// issues.
func (a *QualityAnalyzer) reactionMetrics(issues []*models.Issue, r *report.QualityReport) {
	var total int
	for _, issue := range issues {
		total += issue.Reactions
	}
	r.AvgReactions = float64(total) / float64(len(issues))

	ranked := make([]*models.Issue, len(issues))
	copy(ranked, issues)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Reactions > ranked[j].Reactions
	})
	for _, issue := range topN(ranked, a.cfg.Quality.TopN) {
		r.MostEngaging = append(r.MostEngaging, report.Ranked{
			Title: issue.Title,
			Value: strconv.Itoa(issue.Reactions),
			URL:   issue.URL,
		})
	}
}

func topN(issues []*models.Issue, n int) []*models.Issue {
	if len(issues) > n {
		return issues[:n]
	}
	return issues
}
