package models

import (
	"testing"
	"time"
)

func TestIssueSet_Add(t *testing.T) {
	s := NewIssueSet()
	s.Add("Crash on startup", "https://example.com/issues/1")
	s.Add("Add dark mode", "https://example.com/issues/2")
	s.Add("Crash on startup", "https://example.com/issues/3")

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}

	// Duplicate titles keep their original position.
	titles := s.Titles()
	if titles[0] != "Crash on startup" || titles[1] != "Add dark mode" {
		t.Errorf("Titles() = %v, want original insertion order", titles)
	}

	// The most recently added URL wins.
	if got := s.URL("Crash on startup"); got != "https://example.com/issues/3" {
		t.Errorf("URL() = %v, want the last URL added", got)
	}
}

func TestIssueSet_TitlesCopy(t *testing.T) {
	s := NewIssueSet()
	s.Add("one", "u1")

	titles := s.Titles()
	titles[0] = "mutated"

	if s.Titles()[0] != "one" {
		t.Error("Titles() must return a copy, not the internal slice")
	}
}

func TestIssue_FullRepo(t *testing.T) {
	issue := &Issue{
		Org:  "myorg",
		Repo: "myrepo",
	}

	if issue.FullRepo() != "myorg/myrepo" {
		t.Errorf("FullRepo() = %v, want myorg/myrepo", issue.FullRepo())
	}
}

func TestIssue_ResolutionTime(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		closed time.Time
		want   time.Duration
	}{
		{"still open", time.Time{}, 0},
		{"closed after two days", created.Add(48 * time.Hour), 48 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue := &Issue{CreatedAt: created, ClosedAt: tt.closed}
			if got := issue.ResolutionTime(); got != tt.want {
				t.Errorf("ResolutionTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGroup_IsNoise(t *testing.T) {
	noise := &Group{Label: NoiseLabel}
	if !noise.IsNoise() {
		t.Error("group with the noise label must report IsNoise")
	}

	real := &Group{Label: 0}
	if real.IsNoise() {
		t.Error("group with label 0 must not report IsNoise")
	}
}
