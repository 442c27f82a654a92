package models

import (
	"fmt"
	"time"
)

// Issue represents a GitHub issue with its metadata
type Issue struct {
	Org       string    `json:"org"`
	Repo      string    `json:"repo"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	State     string    `json:"state"` // "open" or "closed"
	Labels    []string  `json:"labels"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Comments  int       `json:"comments"`
	Reactions int       `json:"reactions"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ClosedAt  time.Time `json:"closed_at"`
}

// FullRepo returns the full repository name (org/repo)
func (i *Issue) FullRepo() string {
	return fmt.Sprintf("%s/%s", i.Org, i.Repo)
}

// ResolutionTime returns how long the issue stayed open, or zero for
// issues that are still open.
func (i *Issue) ResolutionTime() time.Duration {
	if i.ClosedAt.IsZero() {
		return 0
	}
	return i.ClosedAt.Sub(i.CreatedAt)
}

// IssueSet is an insertion-ordered mapping of issue title to canonical URL.
// Adding a title that already exists keeps its original position and
// overwrites the URL, so duplicate titles collapse to a single entry.
type IssueSet struct {
	order []string
	urls  map[string]string
}

// NewIssueSet returns an empty IssueSet.
func NewIssueSet() *IssueSet {
	return &IssueSet{urls: make(map[string]string)}
}

// Add records the URL for a title, keeping first-insertion order.
func (s *IssueSet) Add(title, url string) {
	if _, ok := s.urls[title]; !ok {
		s.order = append(s.order, title)
	}
	s.urls[title] = url
}

// Len returns the number of distinct titles.
func (s *IssueSet) Len() int {
	return len(s.order)
}

// Titles returns the titles in insertion order.
func (s *IssueSet) Titles() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// URL returns the URL recorded for a title, or "" if the title is unknown.
func (s *IssueSet) URL(title string) string {
	return s.urls[title]
}
