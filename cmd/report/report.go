// Package report implements the `crawlsearch report` subcommand: a
// human-readable crawl summary over the persisted index.
package report

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/crawlsearch/internal/config"
	"github.com/jonesrussell/crawlsearch/internal/report"
	"github.com/jonesrussell/crawlsearch/internal/store"
)

// Command builds the `report` subcommand against cfg.
func Command(cfg *config.Config) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a crawl summary for every registered document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cfg, outPath)
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "file to write the report to (defaults to stdout)")

	return cmd
}

func run(ctx context.Context, cfg *config.Config, outPath string) error {
	db, err := store.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	urls, words, index, err := store.Load(ctx, db)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	graph, err := store.LoadGraph(ctx, db)
	if err != nil {
		return fmt.Errorf("load link graph: %w", err)
	}

	out := os.Stdout
	if outPath != "" {
		f, createErr := os.Create(outPath)
		if createErr != nil {
			return fmt.Errorf("create report file: %w", createErr)
		}
		defer f.Close()
		out = f
	}

	return report.Write(out, urls, words, index, graph)
}
