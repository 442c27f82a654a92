package github

import (
	"testing"
	"time"
)

func TestParseRepo(t *testing.T) {
	tests := []struct {
		input    string
		wantOrg  string
		wantRepo string
		wantErr  bool
	}{
		{"golang/go", "golang", "go", false},
		{"my-org/my.repo", "my-org", "my.repo", false},
		{"norepo", "", "", true},
		{"too/many/parts", "", "", true},
		{"/repo", "", "", true},
		{"org/", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			org, repo, err := ParseRepo(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseRepo(%q) expected error, got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRepo(%q) error = %v", tt.input, err)
			}
			if org != tt.wantOrg || repo != tt.wantRepo {
				t.Errorf("ParseRepo(%q) = %q, %q, want %q, %q", tt.input, org, repo, tt.wantOrg, tt.wantRepo)
			}
		})
	}
}

func TestIssue_ToModel(t *testing.T) {
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	closed := created.Add(72 * time.Hour)

	ai := Issue{
		Number:    42,
		Title:     "Crash on startup",
		State:     "closed",
		HTMLURL:   "https://github.com/testorg/testrepo/issues/42",
		User:      User{Login: "someone"},
		Labels:    []Label{{Name: "bug"}, {Name: "p1"}},
		Comments:  3,
		Reactions: Reactions{TotalCount: 7},
		CreatedAt: created,
		UpdatedAt: closed,
		ClosedAt:  &closed,
	}

	m := ai.ToModel("testorg", "testrepo")

	if m.FullRepo() != "testorg/testrepo" {
		t.Errorf("FullRepo() = %v, want testorg/testrepo", m.FullRepo())
	}
	if m.Title != "Crash on startup" {
		t.Errorf("Title = %v", m.Title)
	}
	if len(m.Labels) != 2 || m.Labels[0] != "bug" {
		t.Errorf("Labels = %v, want [bug p1]", m.Labels)
	}
	if m.Author != "someone" {
		t.Errorf("Author = %v, want someone", m.Author)
	}
	if m.Comments != 3 {
		t.Errorf("Comments = %d, want 3", m.Comments)
	}
	if m.Reactions != 7 {
		t.Errorf("Reactions = %d, want 7", m.Reactions)
	}
	if m.ResolutionTime() != 72*time.Hour {
		t.Errorf("ResolutionTime() = %v, want 72h", m.ResolutionTime())
	}
}

func TestIssue_ToModel_OpenIssue(t *testing.T) {
	ai := Issue{Number: 1, Title: "Still open", State: "open"}

	m := ai.ToModel("o", "r")
	if !m.ClosedAt.IsZero() {
		t.Errorf("ClosedAt = %v, want zero for open issue", m.ClosedAt)
	}
}

func TestIssue_IsPullRequest(t *testing.T) {
	issue := Issue{Number: 1}
	if issue.IsPullRequest() {
		t.Error("plain issue must not be detected as pull request")
	}

	pr := Issue{Number: 2, PullRequest: &struct{}{}}
	if !pr.IsPullRequest() {
		t.Error("record with pull_request key must be detected as pull request")
	}
}
