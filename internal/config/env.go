package config

import (
	"os"
	"regexp"
)

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name from ${VAR_NAME}
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if value := os.Getenv(varName); value != "" {
			return value
		}
		return match // Keep original if env var not set
	})
}

// expandConfigEnvVars expands environment variables in config string fields
func expandConfigEnvVars(cfg *Config) {
	cfg.GitHub.Token = expandEnvVars(cfg.GitHub.Token)
	cfg.GitHub.Repository = expandEnvVars(cfg.GitHub.Repository)
	cfg.Embedding.Primary.APIKey = expandEnvVars(cfg.Embedding.Primary.APIKey)
	cfg.Embedding.Primary.Host = expandEnvVars(cfg.Embedding.Primary.Host)
	cfg.Embedding.Fallback.APIKey = expandEnvVars(cfg.Embedding.Fallback.APIKey)
	cfg.Embedding.Fallback.Host = expandEnvVars(cfg.Embedding.Fallback.Host)
	cfg.LLM.APIKey = expandEnvVars(cfg.LLM.APIKey)
	cfg.Todos.Path = expandEnvVars(cfg.Todos.Path)
}
