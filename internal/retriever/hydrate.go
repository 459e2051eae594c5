package retriever

import (
	"sort"

	"github.com/jonesrussell/crawlsearch/internal/domain"
	"github.com/jonesrussell/crawlsearch/internal/indexer"
	"github.com/jonesrussell/crawlsearch/internal/registry"
)

// topKeywordCount is how many of a document's most frequent body terms are
// surfaced as a result's keyword summary.
const topKeywordCount = 5

// maxHydratedLinks caps the parent/child urlIds attached to each hit.
const maxHydratedLinks = 10

// Hit is one ranked, metadata-hydrated search result.
type Hit struct {
	Document *domain.Document
	Score    float64
	Keywords []string
	Parents  []string
	Children []string
}

// hydrate resolves each scored urlId to its Document, a keyword summary, and
// its immediate link-graph neighborhood. urlIds with no registered document
// (should not occur once a urlId is scoreable) are silently skipped.
func hydrate(
	urls *registry.URLRegistry,
	index *indexer.Index,
	words *registry.WordDictionary,
	graph *registry.LinkGraph,
	scores map[string]float64,
) []Hit {
	hits := make([]Hit, 0, len(scores))

	for urlID, score := range scores {
		doc, ok := urls.ByID(urlID)
		if !ok {
			continue
		}
		hits = append(hits, Hit{
			Document: doc,
			Score:    score,
			Keywords: index.TopKeywords(urlID, topKeywordCount, words.Word),
			Parents:  capLinks(graph.Parents(urlID)),
			Children: capLinks(graph.Children(urlID)),
		})
	}

	return hits
}

func capLinks(ids []string) []string {
	sort.Strings(ids)
	if len(ids) > maxHydratedLinks {
		ids = ids[:maxHydratedLinks]
	}
	return ids
}
