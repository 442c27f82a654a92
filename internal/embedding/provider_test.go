package embedding

import (
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello world", "hello world"},
		{"surrounding space", "  hello  ", "hello"},
		{"blank lines dropped", "first\n\n\n  second  \n", "first\nsecond"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	if got := TruncateText("short", 100); got != "short" {
		t.Errorf("TruncateText left short text alone, got %q", got)
	}

	long := strings.Repeat("a", 50)
	got := TruncateText(long, 10)
	if got != strings.Repeat("a", 10)+"..." {
		t.Errorf("TruncateText(long, 10) = %q", got)
	}
}

func TestPrepareTitle(t *testing.T) {
	got := PrepareTitle("  Crash on startup  ")
	if got != "Crash on startup" {
		t.Errorf("PrepareTitle() = %q, want trimmed title", got)
	}

	long := strings.Repeat("x", maxTitleChars+500)
	got = PrepareTitle(long)
	if len(got) != maxTitleChars+3 {
		t.Errorf("PrepareTitle() did not truncate, len = %d", len(got))
	}
}
