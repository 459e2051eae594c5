package crawler

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/jmoiron/sqlx"

	crawlerconfig "github.com/jonesrussell/crawlsearch/internal/config/crawler"
	"github.com/jonesrussell/crawlsearch/internal/indexer"
	"github.com/jonesrussell/crawlsearch/internal/logger"
	"github.com/jonesrussell/crawlsearch/internal/registry"
	"github.com/jonesrussell/crawlsearch/internal/store"
	"github.com/jonesrussell/crawlsearch/internal/textpipeline"
)

// Crawler wires the frontier, fetcher, and worker pool together and
// periodically flushes the accumulated snapshot to storage.
type Crawler struct {
	cfg   *crawlerconfig.Config
	db    *sqlx.DB
	log   logger.Interface
	Urls  *registry.URLRegistry
	Words *registry.WordDictionary
	Index *indexer.Index
	Graph *registry.LinkGraph
}

// New builds a Crawler from cfg and an already-connected database handle.
func New(cfg *crawlerconfig.Config, db *sqlx.DB, log logger.Interface) *Crawler {
	return &Crawler{
		cfg:   cfg,
		db:    db,
		log:   log,
		Urls:  registry.NewURLRegistry(),
		Words: registry.NewWordDictionary(),
		Index: indexer.New(),
		Graph: registry.NewLinkGraph(),
	}
}

// Run crawls from the configured seeds until MaxPages is reached or ctx is
// cancelled, flushing a snapshot every BatchSize fetched pages and once more
// on completion.
func (c *Crawler) Run(ctx context.Context) error {
	if err := c.cfg.Validate(); err != nil {
		return fmt.Errorf("crawler config: %w", err)
	}

	httpClient := &http.Client{
		Timeout:       c.cfg.RequestTimeout,
		CheckRedirect: redirectChecker(c.cfg.MaxRedirects),
	}
	fetcher := textpipeline.NewFetcher(httpClient, c.cfg.UserAgent)
	frontier := NewFrontier(c.cfg.Seeds)

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	var (
		flushMu  sync.Mutex
		flushErr error
	)

	pool := NewWorkerPool(
		frontier,
		fetcher,
		c.Urls,
		c.Words,
		c.Index,
		c.Graph,
		c.log,
		func(count int) {
			if c.cfg.BatchSize <= 0 || count%c.cfg.BatchSize != 0 {
				return
			}
			if err := c.flush(runCtx); err != nil {
				c.log.Error("batched flush failed", "error", err.Error())
				flushMu.Lock()
				if flushErr == nil {
					flushErr = fmt.Errorf("batched flush: %w", err)
				}
				flushMu.Unlock()
				// A failed flush loses the batch; the crawl must stop rather
				// than keep accumulating postings no one can persist.
				cancelRun()
			}
		},
		WorkerPoolConfig{
			WorkerCount:        c.cfg.WorkerCount,
			MaxPages:           c.cfg.MaxPages,
			MaxOutlinksPerPage: c.cfg.MaxOutlinksPerPage,
			ClaimRetryDelay:    c.cfg.ClaimRetryDelay,
		},
	)

	pool.Start(runCtx)

	flushMu.Lock()
	defer flushMu.Unlock()
	if flushErr != nil {
		return flushErr
	}

	if err := c.flush(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("final flush: %w", err)
	}
	return nil
}

func (c *Crawler) flush(ctx context.Context) error {
	if c.db == nil {
		return nil
	}
	return store.Flush(ctx, c.db, c.Urls, c.Words, c.Index, c.Graph)
}

func redirectChecker(maxHops int) func(*http.Request, []*http.Request) error {
	return textpipeline.RedirectPolicy(maxHops)
}
