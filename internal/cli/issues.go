package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/analyzer"
	"github.com/repolens/repolens/internal/embedding"
	"github.com/repolens/repolens/internal/github"
	"github.com/repolens/repolens/internal/llm"
	"github.com/repolens/repolens/internal/report"
)

func newIssuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "issues",
		Short: "Group open issues into semantic clusters",
		Long: `Fetch the open issues of the configured repository, embed their titles
and cluster similar ones into groups. Issues that match no group land in
a trailing "Other" section of the report.`,
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

			a, err := analyzer.NewIssuesAnalyzer(cfg, gh, embedder, chat, report.NewWriter(cfg.Report.OutputDir))
			if err != nil {
				return err
			}

			path, err := a.Run(ctx)
			if err != nil {
				return fmt.Errorf("issues analysis failed: %w", err)
			}

			fmt.Printf("Report written to %s\n", path)
			return nil
		},
	}
}
