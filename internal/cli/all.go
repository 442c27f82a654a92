package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/analyzer"
	"github.com/repolens/repolens/internal/embedding"
	"github.com/repolens/repolens/internal/github"
	"github.com/repolens/repolens/internal/llm"
	"github.com/repolens/repolens/internal/report"
)

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run every analyzer in sequence",
		Long:  `Run the issues, quality and todos analyzers one after another. The first failure aborts the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			gh, err := github.NewClient(cfg.GitHub.Token)
			if err != nil {
				return err
			}
			defer gh.Close()

			embedder, err := embedding.NewFallbackProvider(&cfg.Embedding)
			if err != nil {
				return fmt.Errorf("failed to create embedding provider: %w", err)
			}
			defer embedder.Close()

			var chat llm.Provider
			if cfg.LLM.Enabled {
				chat, err = llm.New(&cfg.LLM)
				if err != nil {
					return fmt.Errorf("failed to create llm provider: %w", err)
				}
				defer chat.Close()
			}

			writer := report.NewWriter(cfg.Report.OutputDir)

			issues, err := analyzer.NewIssuesAnalyzer(cfg, gh, embedder, chat, writer)
			if err != nil {
				return err
			}
			quality, err := analyzer.NewQualityAnalyzer(cfg, gh, writer)
			if err != nil {
				return err
			}
			todos, err := analyzer.NewTodosAnalyzer(cfg, writer)
			if err != nil {
				return err
			}

			for _, a := range []analyzer.Analyzer{issues, quality, todos} {
				log.Info().Str("analyzer", a.Name()).Msg("Running analyzer")
				path, err := a.Run(ctx)
				if err != nil {
					return fmt.Errorf("%s analysis failed: %w", a.Name(), err)
				}
				fmt.Printf("Report written to %s\n", path)
			}

			return nil
		},
	}
}
