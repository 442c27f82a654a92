package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"
)

// pagedTransport serves canned issue pages keyed by the "page" query
// parameter and records every request it sees.
type pagedTransport struct {
	pages    map[string][]Issue
	requests []*http.Request
}

func (pt *pagedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	pt.requests = append(pt.requests, req)

	page := req.URL.Query().Get("page")
	body, err := json.Marshal(pt.pages[page])
	if err != nil {
		return nil, err
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader(body)),
		Request:    req,
	}, nil
}

func newTestClient(t *testing.T, rt http.RoundTripper) (*Client, error) {
	t.Helper()
	rest, err := api.NewRESTClient(api.ClientOptions{
		Host:      "github.com",
		AuthToken: "test-token",
		Transport: rt,
	})
	if err != nil {
		return nil, err
	}
	return &Client{rest: rest}, nil
}

func makeIssues(start, count int, prEvery int) []Issue {
	issues := make([]Issue, 0, count)
	for i := 0; i < count; i++ {
		n := start + i
		issue := Issue{
			Number:    n,
			Title:     fmt.Sprintf("issue %d", n),
			State:     "open",
			HTMLURL:   fmt.Sprintf("https://github.com/o/r/issues/%d", n),
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		if prEvery > 0 && n%prEvery == 0 {
			issue.PullRequest = &struct{}{}
			issue.HTMLURL = fmt.Sprintf("https://github.com/o/r/pull/%d", n)
		}
		issues = append(issues, issue)
	}
	return issues
}

func TestListOpenIssues_PaginatesAndFiltersPullRequests(t *testing.T) {
	// A full raw page that shrinks below the page size once pull
	// requests are filtered out. Pagination must continue anyway.
	pt := &pagedTransport{pages: map[string][]Issue{
		"1": makeIssues(1, 100, 10),
		"2": makeIssues(101, 3, 0),
	}}

	client, err := newTestClient(t, pt)
	if err != nil {
		t.Fatalf("failed to create test client: %v", err)
	}

	issues, err := client.ListOpenIssues(context.Background(), "o", "r")
	if err != nil {
		t.Fatalf("ListOpenIssues() error = %v", err)
	}

	if len(pt.requests) != 2 {
		t.Fatalf("expected 2 page requests, got %d", len(pt.requests))
	}
	// 100 raw minus 10 pull requests, plus the short second page.
	if len(issues) != 93 {
		t.Errorf("expected 93 issues, got %d", len(issues))
	}
	for _, issue := range issues {
		if issue.Number%10 == 0 && issue.Number <= 100 {
			t.Errorf("pull request %d leaked into the issue list", issue.Number)
		}
	}
}

func TestListOpenIssues_SinglePage(t *testing.T) {
	pt := &pagedTransport{pages: map[string][]Issue{
		"1": makeIssues(1, 5, 0),
	}}

	client, err := newTestClient(t, pt)
	if err != nil {
		t.Fatalf("failed to create test client: %v", err)
	}

	issues, err := client.ListOpenIssues(context.Background(), "o", "r")
	if err != nil {
		t.Fatalf("ListOpenIssues() error = %v", err)
	}

	if len(pt.requests) != 1 {
		t.Errorf("expected 1 page request, got %d", len(pt.requests))
	}
	if len(issues) != 5 {
		t.Errorf("expected 5 issues, got %d", len(issues))
	}

	q := pt.requests[0].URL.Query()
	if got := q.Get("state"); got != "open" {
		t.Errorf("state = %q, want open", got)
	}
	if got := q.Get("per_page"); got != "100" {
		t.Errorf("per_page = %q, want 100", got)
	}
}

func TestListClosedIssues_QueryParameters(t *testing.T) {
	pt := &pagedTransport{pages: map[string][]Issue{
		"1": makeIssues(1, 2, 0),
	}}

	client, err := newTestClient(t, pt)
	if err != nil {
		t.Fatalf("failed to create test client: %v", err)
	}

	since := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if _, err := client.ListClosedIssues(context.Background(), "o", "r", since, "bug"); err != nil {
		t.Fatalf("ListClosedIssues() error = %v", err)
	}

	q := pt.requests[0].URL.Query()
	if got := q.Get("state"); got != "closed" {
		t.Errorf("state = %q, want closed", got)
	}
	if got := q.Get("labels"); got != "bug" {
		t.Errorf("labels = %q, want bug", got)
	}
	if got := q.Get("since"); got != since.Format(time.RFC3339) {
		t.Errorf("since = %q, want %q", got, since.Format(time.RFC3339))
	}
}
