package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/analyzer"
	"github.com/repolens/repolens/internal/github"
	"github.com/repolens/repolens/internal/report"
)

func newQualityCmd() *cobra.Command {
	var labels []string

	cmd := &cobra.Command{
		Use:   "quality",
		Short: "Measure responsiveness over closed issues",
		Long: `Aggregate resolution time, time to first comment, comment counts and
reactions over recently closed issues. With --label, the recency window
is replaced by fetching every closed issue carrying that label.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if len(labels) > 0 {
				cfg.Quality.Labels = labels
			}

			gh, err := github.NewClient(cfg.GitHub.Token)
			if err != nil {
				return err
			}
			defer gh.Close()

			a, err := analyzer.NewQualityAnalyzer(cfg, gh, report.NewWriter(cfg.Report.OutputDir))
			if err != nil {
				return err
			}

			path, err := a.Run(ctx)
			if err != nil {
				return fmt.Errorf("quality analysis failed: %w", err)
			}

			fmt.Printf("Report written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&labels, "label", nil, "closed-issue label filter (repeatable), overrides config")

	return cmd
}
