package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/repolens/repolens/internal/config"
)

// stubChat records the last request and returns a canned response.
type stubChat struct {
	system   string
	prompt   string
	response string
	err      error
}

func (s *stubChat) Complete(ctx context.Context, prompt string) (string, error) {
	return s.CompleteWithSystem(ctx, "", prompt)
}

func (s *stubChat) CompleteWithSystem(ctx context.Context, system, prompt string) (string, error) {
	s.system = system
	s.prompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubChat) Close() error { return nil }

func TestClusterTitle(t *testing.T) {
	stub := &stubChat{response: "Crash reports on startup"}

	title, err := ClusterTitle(context.Background(), stub, []string{"crash at boot", "crash on login"})
	if err != nil {
		t.Fatalf("ClusterTitle() error = %v", err)
	}
	if title != "Crash reports on startup" {
		t.Errorf("ClusterTitle() = %q", title)
	}

	if !strings.Contains(stub.prompt, "crash at boot") || !strings.Contains(stub.prompt, "crash on login") {
		t.Errorf("prompt is missing issue titles: %q", stub.prompt)
	}
	if stub.system == "" {
		t.Error("expected a system prompt")
	}
}

func TestClusterTitle_SanitizesResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{"list marker", "- Fix startup crashes\n", "Fix startup crashes"},
		{"trailing explanation", "Dark mode requests\nThese issues ask for...", "Dark mode requests"},
		{"quoted", `"Login failures"`, "Login failures"},
		{"whitespace", "  Flaky tests  ", "Flaky tests"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubChat{response: tt.response}
			got, err := ClusterTitle(context.Background(), stub, []string{"a", "b"})
			if err != nil {
				t.Fatalf("ClusterTitle() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ClusterTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClusterTitle_Errors(t *testing.T) {
	stub := &stubChat{err: errors.New("rate limited")}
	if _, err := ClusterTitle(context.Background(), stub, []string{"a"}); err == nil {
		t.Fatal("expected error when the provider fails")
	}

	empty := &stubChat{response: "   \n  "}
	if _, err := ClusterTitle(context.Background(), empty, []string{"a"}); err == nil {
		t.Fatal("expected error for an empty title")
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(&config.LLMConfig{Provider: "mistral"})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider("", "gpt-4o-mini"); err == nil {
		t.Fatal("expected error without API key")
	}
}
