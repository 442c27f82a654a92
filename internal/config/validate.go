package config

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for errors
func Validate(cfg *Config) []error {
	var errs []error

	// Validate GitHub config
	if cfg.GitHub.Repository == "" {
		errs = append(errs, ValidationError{"github.repository", "required"})
	} else if !strings.Contains(cfg.GitHub.Repository, "/") {
		errs = append(errs, ValidationError{"github.repository", "must be in format 'org/repo'"})
	}

	// Validate embedding config
	errs = append(errs, validateProvider("embedding.primary", cfg.Embedding.Primary, true)...)
	if cfg.Embedding.Fallback.Provider != "" {
		errs = append(errs, validateProvider("embedding.fallback", cfg.Embedding.Fallback, false)...)
	}

	// Validate clustering parameters
	if cfg.Cluster.MinClusterSize < 2 {
		errs = append(errs, ValidationError{"cluster.min_cluster_size", "must be at least 2"})
	}
	if cfg.Cluster.MinSamples < 1 {
		errs = append(errs, ValidationError{"cluster.min_samples", "must be at least 1"})
	}

	// Validate quality config
	if cfg.Quality.WindowDays < 1 {
		errs = append(errs, ValidationError{"quality.window_days", "must be at least 1"})
	}
	if cfg.Quality.TopN < 1 {
		errs = append(errs, ValidationError{"quality.top_n", "must be at least 1"})
	}

	// Validate todos config
	if _, err := regexp.Compile(cfg.Todos.Pattern); err != nil {
		errs = append(errs, ValidationError{"todos.pattern", "must be a valid regular expression"})
	}

	// Validate LLM config (only if enabled)
	if cfg.LLM.Enabled {
		if cfg.LLM.Provider != "gemini" && cfg.LLM.Provider != "openai" {
			errs = append(errs, ValidationError{"llm.provider", "must be 'gemini' or 'openai'"})
		}
		if cfg.LLM.APIKey == "" {
			errs = append(errs, ValidationError{"llm.api_key", "required when llm is enabled"})
		}
		if cfg.LLM.Model == "" {
			errs = append(errs, ValidationError{"llm.model", "required when llm is enabled"})
		}
	}

	return errs
}

// validateProvider checks one embedding provider block. The primary
// provider is mandatory, the fallback is only checked when configured.
func validateProvider(prefix string, p ProviderConfig, required bool) []error {
	var errs []error

	switch p.Provider {
	case "gemini", "openai":
		if p.APIKey == "" {
			errs = append(errs, ValidationError{prefix + ".api_key", "required for " + p.Provider})
		}
	case "ollama":
		// Local provider, no API key needed.
	case "":
		if required {
			errs = append(errs, ValidationError{prefix + ".provider", "required"})
		}
	default:
		errs = append(errs, ValidationError{prefix + ".provider", "must be 'gemini', 'openai' or 'ollama'"})
	}

	if p.Dimensions < 0 {
		errs = append(errs, ValidationError{prefix + ".dimensions", "must not be negative"})
	}

	return errs
}
