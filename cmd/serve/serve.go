// Package serve implements the `crawlsearch serve` subcommand: an HTTP
// search surface over the persisted index.
package serve

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/crawlsearch/internal/api"
	"github.com/jonesrussell/crawlsearch/internal/config"
	retrieverconfig "github.com/jonesrussell/crawlsearch/internal/config/retriever"
	"github.com/jonesrussell/crawlsearch/internal/logger"
	"github.com/jonesrussell/crawlsearch/internal/retriever"
	"github.com/jonesrussell/crawlsearch/internal/store"
)

// Command builds the `serve` subcommand against cfg.
func Command(cfg *config.Config) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve search results over HTTP from the persisted index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.Retriever.MaxResults == 0 {
				cfg.Retriever.MaxResults = retrieverconfig.DefaultMaxResults
			}
			return run(cmd.Context(), cfg, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")

	return cmd
}

func run(ctx context.Context, cfg *config.Config, addr string) error {
	log, err := logger.New(&logger.Config{
		Level:       logger.Level(cfg.Logging.Level),
		Development: cfg.Logging.Development,
		Encoding:    cfg.Logging.Encoding,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

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
	router := api.NewRouter(ret, log)

	log.Info("serving search", "addr", addr, "documents", urls.Len())

	if err := router.Run(addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	return nil
}
