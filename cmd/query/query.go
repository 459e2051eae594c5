// Package query implements the `crawlsearch query` subcommand: a one-shot
// retrieval against the persisted index, rendered as a table.
package query

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/crawlsearch/internal/config"
	retrieverconfig "github.com/jonesrussell/crawlsearch/internal/config/retriever"
	"github.com/jonesrussell/crawlsearch/internal/retriever"
	"github.com/jonesrussell/crawlsearch/internal/store"
)

// Command builds the `query` subcommand against cfg.
func Command(cfg *config.Config) *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "query [text]",
		Short: "Run a one-shot query against the persisted index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			queryText := args[0]
			for _, a := range args[1:] {
				queryText += " " + a
			}

			if size > 0 {
				cfg.Retriever.MaxResults = size
			} else if cfg.Retriever.MaxResults == 0 {
				cfg.Retriever.MaxResults = retrieverconfig.DefaultMaxResults
			}

			return run(cmd.Context(), cfg, queryText)
		},
	}

	cmd.Flags().IntVarP(&size, "size", "s", 0, "maximum number of results")

	return cmd
}

func run(ctx context.Context, cfg *config.Config, queryText string) error {
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

	ret := retriever.New(urls, words, index, graph, &cfg.Retriever)
	hits := ret.Search(queryText)

	renderTable(hits)

	return nil
}

func renderTable(hits []retriever.Hit) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "Score", "Title", "URL", "Keywords", "Children"})

	for i, h := range hits {
		t.AppendRow(table.Row{i + 1, fmt.Sprintf("%.2f", h.Score), h.Document.Title, h.Document.URL, h.Keywords, h.Children})
	}

	t.Render()
}
