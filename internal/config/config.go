package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the full application configuration
type Config struct {
	GitHub    GitHubConfig    `yaml:"github"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Cluster   ClusterConfig   `yaml:"cluster"`
	Quality   QualityConfig   `yaml:"quality"`
	Todos     TodosConfig     `yaml:"todos"`
	Report    ReportConfig    `yaml:"report"`
}

// GitHubConfig contains issue source settings
type GitHubConfig struct {
	Repository string `yaml:"repository"` // "org/repo"
	Token      string `yaml:"token"`
}

// EmbeddingConfig contains embedding provider settings
type EmbeddingConfig struct {
	Primary  ProviderConfig `yaml:"primary"`
	Fallback ProviderConfig `yaml:"fallback"`
}

// ProviderConfig contains settings for an embedding provider
type ProviderConfig struct {
	Provider   string `yaml:"provider"` // "gemini", "openai" or "ollama"
	Model      string `yaml:"model"`
	APIKey     string `yaml:"api_key"`
	Host       string `yaml:"host,omitempty"` // ollama only
	Dimensions int    `yaml:"dimensions"`
}

// LLMConfig contains settings for cluster title generation
type LLMConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Provider string `yaml:"provider"` // "gemini" or "openai"
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
}

// ClusterConfig contains density clustering parameters
type ClusterConfig struct {
	MinClusterSize int `yaml:"min_cluster_size"`
	MinSamples     int `yaml:"min_samples"`
}

// QualityConfig contains closed-issue quality analysis settings
type QualityConfig struct {
	Labels            []string `yaml:"labels,omitempty"`
	WindowDays        int      `yaml:"window_days"`
	TopN              int      `yaml:"top_n"`
	SkipTitleKeywords []string `yaml:"skip_title_keywords,omitempty"`
}

// TodosConfig contains local checkout scan settings
type TodosConfig struct {
	Path    string `yaml:"path"`
	Pattern string `yaml:"pattern"`          // file name filter (regexp)
	Branch  string `yaml:"branch,omitempty"` // link ref when git is unavailable
}

// ReportConfig contains report output settings
type ReportConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// Load reads and parses config from the given path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	expandConfigEnvVars(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

// FindConfigPath looks for config in common locations
func FindConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	// Check common locations
	paths := []string{
		".github/repolens.yaml",
		".github/repolens.yml",
		"repolens.yaml",
		"repolens.yml",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	// Check home directory
	if home, err := os.UserHomeDir(); err == nil {
		homePath := filepath.Join(home, ".config", "repolens", "config.yaml")
		if _, err := os.Stat(homePath); err == nil {
			return homePath
		}
	}

	return ""
}

// applyDefaults sets default values for unset fields
func applyDefaults(cfg *Config) {
	if cfg.Embedding.Primary.Provider == "" {
		cfg.Embedding.Primary.Provider = "gemini"
	}
	if cfg.Embedding.Primary.Dimensions == 0 {
		cfg.Embedding.Primary.Dimensions = 768
	}
	if cfg.Embedding.Fallback.Dimensions == 0 {
		cfg.Embedding.Fallback.Dimensions = 768
	}

	if cfg.Cluster.MinClusterSize == 0 {
		cfg.Cluster.MinClusterSize = 2
	}
	if cfg.Cluster.MinSamples == 0 {
		cfg.Cluster.MinSamples = 1
	}

	if cfg.Quality.WindowDays == 0 {
		cfg.Quality.WindowDays = 30
	}
	if cfg.Quality.TopN == 0 {
		cfg.Quality.TopN = 10
	}
	if cfg.Quality.SkipTitleKeywords == nil {
		cfg.Quality.SkipTitleKeywords = []string{"Failing test(s)"}
	}

	if cfg.Todos.Path == "" {
		cfg.Todos.Path = "."
	}
	if cfg.Todos.Pattern == "" {
		cfg.Todos.Pattern = `\.go$`
	}

	if cfg.Report.OutputDir == "" {
		cfg.Report.OutputDir = "."
	}

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "gemini"
	}
	if cfg.LLM.Model == "" && cfg.LLM.Provider == "gemini" {
		cfg.LLM.Model = "gemini-2.5-flash"
	}
	// Enabled defaults to false (zero value) - must be explicitly enabled
}
