package llm

import (
	"context"
	"fmt"

	"github.com/repolens/repolens/internal/config"
)

// Provider defines the interface for LLM chat completion
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithSystem(ctx context.Context, system, prompt string) (string, error)
	Close() error
}

// New creates a chat provider based on config
func New(cfg *config.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiProvider(cfg.APIKey, cfg.Model)
	case "openai":
		return NewOpenAIProvider(cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}
}
