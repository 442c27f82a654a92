package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"

	"github.com/repolens/repolens/pkg/models"
)

// Client wraps GitHub API operations
type Client struct {
	rest *api.RESTClient
}

// NewClient creates a GitHub client. A non-empty token takes precedence
// over the ambient credentials go-gh resolves from GH_TOKEN,
// GITHUB_TOKEN or the gh CLI configuration.
func NewClient(token string) (*Client, error) {
	var (
		rest *api.RESTClient
		err  error
	)
	if token != "" {
		rest, err = api.NewRESTClient(api.ClientOptions{AuthToken: token})
	} else {
		rest, err = api.DefaultRESTClient()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create REST client (set github.token or the GH_TOKEN environment variable): %w", err)
	}

	return &Client{rest: rest}, nil
}

// Close releases resources
func (c *Client) Close() error {
	return nil
}

// ParseRepo splits "owner/repo" into owner and repo
func ParseRepo(fullRepo string) (string, string, error) {
	parts := strings.Split(fullRepo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo format: %s (expected owner/repo)", fullRepo)
	}
	return parts[0], parts[1], nil
}

// Issue represents a GitHub issue from the API
type Issue struct {
	Number      int        `json:"number"`
	Title       string     `json:"title"`
	State       string     `json:"state"`
	HTMLURL     string     `json:"html_url"`
	User        User       `json:"user"`
	Labels      []Label    `json:"labels"`
	Comments    int        `json:"comments"`
	Reactions   Reactions  `json:"reactions"`
	PullRequest *struct{}  `json:"pull_request,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ClosedAt    *time.Time `json:"closed_at"`
}

// User represents a GitHub user
type User struct {
	Login string `json:"login"`
}

// Label represents a GitHub label
type Label struct {
	Name string `json:"name"`
}

// Reactions is the reaction rollup attached to an issue
type Reactions struct {
	TotalCount int `json:"total_count"`
}

// Comment represents a GitHub comment
type Comment struct {
	ID        int       `json:"id"`
	Body      string    `json:"body"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// IsPullRequest reports whether the record is actually a pull request.
// The issues endpoint returns pull requests too, marked by the presence
// of the pull_request key.
func (i *Issue) IsPullRequest() bool {
	return i.PullRequest != nil
}

// ToModel converts API Issue to models.Issue
func (i *Issue) ToModel(org, repo string) *models.Issue {
	labels := make([]string, len(i.Labels))
	for j, l := range i.Labels {
		labels[j] = l.Name
	}

	m := &models.Issue{
		Org:       org,
		Repo:      repo,
		Number:    i.Number,
		Title:     i.Title,
		State:     i.State,
		Labels:    labels,
		Author:    i.User.Login,
		URL:       i.HTMLURL,
		Comments:  i.Comments,
		Reactions: i.Reactions.TotalCount,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
	if i.ClosedAt != nil {
		m.ClosedAt = *i.ClosedAt
	}
	return m
}

// RepoExists checks if a repository exists
func (c *Client) RepoExists(ctx context.Context, org, repo string) (bool, error) {
	var result struct{}
	err := c.rest.Get(fmt.Sprintf("repos/%s/%s", org, repo), &result)
	if err != nil {
		var httpErr *api.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
