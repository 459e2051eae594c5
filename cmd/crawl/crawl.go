// Package crawl implements the `crawlsearch crawl` subcommand.
package crawl

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/crawlsearch/internal/config"
	"github.com/jonesrussell/crawlsearch/internal/crawler"
	"github.com/jonesrussell/crawlsearch/internal/logger"
	"github.com/jonesrussell/crawlsearch/internal/store"
)

// Command builds the `crawl` subcommand against cfg.
func Command(cfg *config.Config) *cobra.Command {
	var (
		seeds       []string
		maxPages    int
		workerCount int
	)

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl a seed set of URLs and build the search index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(seeds) > 0 {
				cfg.Crawler.Seeds = seeds
			}
			if maxPages > 0 {
				cfg.Crawler.MaxPages = maxPages
			}
			if workerCount > 0 {
				cfg.Crawler.WorkerCount = workerCount
			}

			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringSliceVar(&seeds, "seed", nil, "seed URL (repeatable)")
	cmd.Flags().IntVar(&maxPages, "max-pages", 0, "override the configured page cap")
	cmd.Flags().IntVar(&workerCount, "workers", 0, "override the configured worker count")

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
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

	if schemaErr := store.EnsureSchema(ctx, db); schemaErr != nil {
		return schemaErr
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := crawler.New(&cfg.Crawler, db, log)

	log.Info("starting crawl", "seeds", cfg.Crawler.Seeds, "max_pages", cfg.Crawler.MaxPages)

	if runErr := c.Run(ctx); runErr != nil {
		return fmt.Errorf("crawl: %w", runErr)
	}

	log.Info("crawl complete", "documents", c.Urls.Len(), "words", c.Words.Len())

	return nil
}
