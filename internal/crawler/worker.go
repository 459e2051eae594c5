package crawler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonesrussell/crawlsearch/internal/frontier"
	"github.com/jonesrussell/crawlsearch/internal/indexer"
	"github.com/jonesrussell/crawlsearch/internal/logger"
	"github.com/jonesrussell/crawlsearch/internal/registry"
	"github.com/jonesrussell/crawlsearch/internal/textpipeline"
)

// WorkerPoolConfig configures a WorkerPool.
type WorkerPoolConfig struct {
	WorkerCount        int
	MaxPages           int // 0 = unlimited
	MaxOutlinksPerPage int // 0 = unlimited
	ClaimRetryDelay    time.Duration
}

// WorkerPool drives workerCount goroutines that pull URLs from a Frontier,
// fetch and extract their content, feed the indexer, extend the link graph,
// and enqueue discovered outlinks — until ctx is cancelled or MaxPages is
// reached.
type WorkerPool struct {
	frontier  *Frontier
	fetcher   *textpipeline.Fetcher
	urls      *registry.URLRegistry
	words     *registry.WordDictionary
	index     *indexer.Index
	graph     *registry.LinkGraph
	log       logger.Interface
	onFetched func(count int)

	cfg WorkerPoolConfig

	// remaining is the number of MaxPages slots not yet claimed by an
	// in-flight or completed fetch; it gates *starting* a fetch, so the
	// cap can never be overshot by workers racing to finish pages already
	// in flight when the cap is hit. Unused (stays unread) when
	// cfg.MaxPages <= 0.
	remaining    atomic.Int64
	fetchedCount atomic.Int64
	cancel       context.CancelFunc
}

// NewWorkerPool builds a worker pool over the given collaborators.
// onFetched, if non-nil, is called after every successfully indexed page
// with the running fetched-page count — the crawler orchestrator uses it to
// trigger batched snapshot flushes.
func NewWorkerPool(
	frontier *Frontier,
	fetcher *textpipeline.Fetcher,
	urls *registry.URLRegistry,
	words *registry.WordDictionary,
	index *indexer.Index,
	graph *registry.LinkGraph,
	log logger.Interface,
	onFetched func(count int),
	cfg WorkerPoolConfig,
) *WorkerPool {
	wp := &WorkerPool{
		frontier:  frontier,
		fetcher:   fetcher,
		urls:      urls,
		words:     words,
		index:     index,
		graph:     graph,
		log:       log,
		onFetched: onFetched,
		cfg:       cfg,
	}
	if cfg.MaxPages > 0 {
		wp.remaining.Store(int64(cfg.MaxPages))
	}
	return wp
}

// Start launches cfg.WorkerCount goroutines and blocks until ctx is
// cancelled or the crawl reaches MaxPages and stops itself.
func (wp *WorkerPool) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	wp.cancel = cancel
	defer cancel()

	wp.log.Info("starting worker pool", "worker_count", wp.cfg.WorkerCount)

	var wg sync.WaitGroup
	for i := range wp.cfg.WorkerCount {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			wp.worker(ctx, workerID)
		}(i)
	}
	wg.Wait()

	wp.log.Info("worker pool stopped", "pages_fetched", wp.fetchedCount.Load())
}

// worker is a single worker goroutine loop: claim a URL from the frontier,
// process it, repeat until ctx is cancelled.
func (wp *WorkerPool) worker(ctx context.Context, workerID int) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		url, ok := wp.frontier.Pop(ctx)
		if !ok {
			return
		}

		if err := wp.processURL(ctx, url); err != nil {
			wp.log.Error("process url failed", "worker_id", workerID, "url", url, "error", err.Error())
		}
	}
}

// processURL fetches, extracts, indexes, and expands the frontier for one
// URL. Fetch and extraction failures are logged and otherwise swallowed —
// a single bad page never aborts the crawl.
func (wp *WorkerPool) processURL(ctx context.Context, rawURL string) error {
	normalized, err := frontier.NormalizeURL(rawURL)
	if err != nil {
		wp.log.Info("skipping unnormalizable url", "url", rawURL, "error", err.Error())
		return nil
	}

	if !wp.reserveSlot() {
		// Every MaxPages slot is already claimed by a fetch that's either
		// in flight or already indexed; don't start another one.
		wp.cancel()
		return nil
	}

	doc := wp.urls.GetOrCreate(normalized)

	result, err := wp.fetcher.Fetch(ctx, normalized)
	if err != nil {
		wp.releaseSlot()
		wp.log.Info("fetch failed", "url", rawURL, "error", err.Error())
		return nil
	}
	if result.StatusCode != 200 {
		wp.releaseSlot()
		wp.log.Info("unexpected status", "url", rawURL, "status", result.StatusCode)
		return nil
	}

	page, err := textpipeline.Extract(result.FinalURL, result.Header, result.Body)
	if err != nil {
		wp.releaseSlot()
		wp.log.Info("extract failed", "url", rawURL, "error", err.Error())
		return nil
	}

	doc.Title = page.Title
	doc.LastModified = page.LastModified
	doc.Size = page.Size
	wp.urls.MarkFetched(doc)

	wp.indexPage(doc.URLID, page)
	wp.expandFrontier(doc.URLID, page.Links)

	wp.log.Info("fetched", "url", rawURL, "title", page.Title)

	// The reserved slot is now permanently spent: this page is fully
	// indexed and counts toward MaxPages for good.
	count := int(wp.fetchedCount.Add(1))
	if wp.onFetched != nil {
		wp.onFetched(count)
	}
	if wp.cfg.MaxPages > 0 && count >= wp.cfg.MaxPages {
		wp.cancel()
	}

	return nil
}

// reserveSlot claims one of the MaxPages slots before a fetch starts, so
// the hard cap is enforced against concurrent attempts rather than only
// checked after a page finishes indexing. Returns false once every slot is
// claimed; the caller must not fetch in that case. A non-positive MaxPages
// means unlimited, and reserveSlot always succeeds.
func (wp *WorkerPool) reserveSlot() bool {
	if wp.cfg.MaxPages <= 0 {
		return true
	}
	if wp.remaining.Add(-1) >= 0 {
		return true
	}
	wp.remaining.Add(1) // give back the slot this call over-claimed
	return false
}

// releaseSlot returns a slot reserved by reserveSlot that was not spent on
// a successfully indexed document, letting another URL claim it.
func (wp *WorkerPool) releaseSlot() {
	if wp.cfg.MaxPages <= 0 {
		return
	}
	wp.remaining.Add(1)
}

// indexPage tokenizes the page's title and body and records their positions
// in the index, keyed by the wordIds minted (or reused) from the dictionary.
func (wp *WorkerPool) indexPage(urlID string, page *textpipeline.Page) {
	bodyPositions := wp.termPositions(page.Body)
	titlePositions := wp.termPositions(page.Title)
	wp.index.IndexDocument(urlID, bodyPositions, titlePositions)
}

func (wp *WorkerPool) termPositions(text string) map[string][]int {
	terms := textpipeline.Tokenize(text)
	positions := make(map[string][]int)
	for i, term := range terms {
		wordID := wp.words.GetOrCreate(term).WordID
		positions[wordID] = append(positions[wordID], i)
	}
	return positions
}

// expandFrontier registers every outlink as a document, extends the link
// graph, and enqueues it for a future fetch, capped at MaxOutlinksPerPage.
func (wp *WorkerPool) expandFrontier(parentID string, links []string) {
	limit := len(links)
	if wp.cfg.MaxOutlinksPerPage > 0 && wp.cfg.MaxOutlinksPerPage < limit {
		limit = wp.cfg.MaxOutlinksPerPage
	}

	for _, link := range links[:limit] {
		normalized, err := frontier.NormalizeURL(link)
		if err != nil {
			continue
		}

		child := wp.urls.GetOrCreate(normalized)
		wp.graph.AddEdge(parentID, child.URLID)
		wp.frontier.Push(normalized)
	}
}
