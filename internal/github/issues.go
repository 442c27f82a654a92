package github

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/repolens/repolens/pkg/models"
)

// ListOptions configures issue listing
type ListOptions struct {
	State   string // "open", "closed", "all"
	Labels  string // comma separated label filter
	PerPage int
	Page    int
	Since   time.Time
}

// ListOpenIssues fetches every open issue of a repository, walking all
// pages. Pull requests are filtered out.
func (c *Client) ListOpenIssues(ctx context.Context, org, repo string) ([]*models.Issue, error) {
	return c.listAll(ctx, org, repo, ListOptions{State: "open"})
}

// ListClosedIssues fetches closed issues, optionally restricted to a
// label and to issues updated since the given time.
func (c *Client) ListClosedIssues(ctx context.Context, org, repo string, since time.Time, label string) ([]*models.Issue, error) {
	return c.listAll(ctx, org, repo, ListOptions{State: "closed", Since: since, Labels: label})
}

// listAll walks the issues endpoint page by page. The pagination stop
// uses the raw page size: filtering pull requests out of a page must
// not end the walk early.
func (c *Client) listAll(ctx context.Context, org, repo string, opts ListOptions) ([]*models.Issue, error) {
	if opts.PerPage == 0 {
		opts.PerPage = 100
	}

	var all []*models.Issue
	for page := 1; ; page++ {
		opts.Page = page
		raw, err := c.listPage(ctx, org, repo, opts)
		if err != nil {
			return nil, err
		}

		for i := range raw {
			if raw[i].IsPullRequest() {
				continue
			}
			all = append(all, raw[i].ToModel(org, repo))
		}

		if len(raw) < opts.PerPage {
			break
		}
	}

	return all, nil
}

// listPage fetches a single page of issues from the API.
func (c *Client) listPage(ctx context.Context, org, repo string, opts ListOptions) ([]Issue, error) {
	if opts.State == "" {
		opts.State = "open"
	}

	params := url.Values{}
	params.Set("state", opts.State)
	params.Set("per_page", strconv.Itoa(opts.PerPage))
	params.Set("page", strconv.Itoa(opts.Page))
	params.Set("sort", "updated")
	params.Set("direction", "desc")
	if opts.Labels != "" {
		params.Set("labels", opts.Labels)
	}
	if !opts.Since.IsZero() {
		params.Set("since", opts.Since.Format(time.RFC3339))
	}

	endpoint := fmt.Sprintf("repos/%s/%s/issues?%s", org, repo, params.Encode())

	var apiIssues []Issue
	if err := c.rest.Get(endpoint, &apiIssues); err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}

	return apiIssues, nil
}
