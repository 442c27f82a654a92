package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/analyzer"
	"github.com/repolens/repolens/internal/report"
)

func newTodosCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "todos",
		Short: "List TODO markers in a local checkout",
		Long: `Scan a local checkout for TODO comments and report them with links
pinned to the checked out revision.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if path != "" {
				cfg.Todos.Path = path
			}

			a, err := analyzer.NewTodosAnalyzer(cfg, report.NewWriter(cfg.Report.OutputDir))
			if err != nil {
				return err
			}

			reportPath, err := a.Run(ctx)
			if err != nil {
				return fmt.Errorf("todos analysis failed: %w", err)
			}

			fmt.Printf("Report written to %s\n", reportPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "checkout path to scan, overrides config")

	return cmd
}
