package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/config"
)

var (
	cfgFile      string
	repoOverride string
	verbose      bool
	version      = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "repolens",
	Short: "Repository health analyzer",
	Long: `repolens analyzes the health of a GitHub repository from three angles:
open issues grouped into semantic clusters, responsiveness metrics over
closed issues, and TODO markers left in the checkout.

Issue clustering uses embedding models (Gemini, OpenAI or a local
Ollama) with density-based grouping over title similarity.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env file is fine, the environment may already
		// carry the tokens.
		_ = godotenv.Load()

		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		zerolog.SetGlobalLevel(level)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&repoOverride, "repo", "", "repository to analyze (owner/repo), overrides config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newIssuesCmd())
	rootCmd.AddCommand(newQualityCmd())
	rootCmd.AddCommand(newTodosCmd())
	rootCmd.AddCommand(newAllCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("repolens version %s\n", version)
		},
	}
}

// loadConfig resolves, loads and validates the configuration shared by
// the analyzer commands.
func loadConfig() (*config.Config, error) {
	cfgPath := config.FindConfigPath(cfgFile)
	if cfgPath == "" {
		return nil, fmt.Errorf("config file not found")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if repoOverride != "" {
		cfg.GitHub.Repository = repoOverride
	}

	if errs := config.Validate(cfg); len(errs) > 0 {
		for _, e := range errs {
			fmt.Printf("config error: %v\n", e)
		}
		return nil, fmt.Errorf("invalid configuration")
	}

	return cfg, nil
}
