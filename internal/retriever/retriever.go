package retriever

import (
	"sort"

	retrieverconfig "github.com/jonesrussell/crawlsearch/internal/config/retriever"
	"github.com/jonesrussell/crawlsearch/internal/indexer"
	"github.com/jonesrussell/crawlsearch/internal/registry"
)

// Retriever answers queries against a shared index, registry, word
// dictionary, and link graph snapshot.
type Retriever struct {
	urls  *registry.URLRegistry
	words *registry.WordDictionary
	index *indexer.Index
	graph *registry.LinkGraph
	cfg   *retrieverconfig.Config
}

// New builds a Retriever over the given collaborators.
func New(
	urls *registry.URLRegistry,
	words *registry.WordDictionary,
	index *indexer.Index,
	graph *registry.LinkGraph,
	cfg *retrieverconfig.Config,
) *Retriever {
	return &Retriever{urls: urls, words: words, index: index, graph: graph, cfg: cfg}
}

// Search parses raw, scores every matching document, and returns up to
// MaxResults hits ranked by descending score with ties broken by ascending
// urlId for a deterministic ordering.
func (r *Retriever) Search(raw string) []Hit {
	query := ParseQuery(raw)
	scores := Score(r.index, r.words, r.index.DocumentCount(), query)
	hits := hydrate(r.urls, r.index, r.words, r.graph, scores)

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Document.URLID < hits[j].Document.URLID
	})

	if len(hits) > r.cfg.MaxResults {
		hits = hits[:r.cfg.MaxResults]
	}

	return hits
}
