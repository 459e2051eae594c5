// Package indexer holds the in-memory inverted and forward indexes and their
// persisted-table encoding.
package indexer

import (
	"sort"
	"sync"

	"github.com/jonesrussell/crawlsearch/internal/domain"
)

// Index holds the body postings, title postings, and forward index for every
// indexed document. Safe for concurrent use. Re-indexing a urlId replaces its
// prior postings and forward entry rather than merging with them, so a
// document can be re-crawled and re-indexed idempotently.
type Index struct {
	mu       sync.RWMutex
	body     map[string]map[string]*domain.Posting // wordId -> urlId -> posting
	title    map[string]map[string]*domain.Posting // wordId -> urlId -> posting
	forward  map[string]map[string]struct{}        // urlId -> set of wordId
	docWords map[string][]string                   // urlId -> wordIds previously indexed (for replacement)
}

// New creates an empty index.
func New() *Index {
	return &Index{
		body:     make(map[string]map[string]*domain.Posting),
		title:    make(map[string]map[string]*domain.Posting),
		forward:  make(map[string]map[string]struct{}),
		docWords: make(map[string][]string),
	}
}

// IndexDocument replaces all postings and the forward entry for urlID with
// the given body and title term occurrences. bodyPositions and
// titlePositions each map wordId to its strictly-ascending list of token
// positions within that field; an empty list is treated as "word does not
// occur in this field".
func (ix *Index) IndexDocument(urlID string, bodyPositions, titlePositions map[string][]int) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.clearLocked(urlID)

	wordSet := make(map[string]struct{}, len(bodyPositions)+len(titlePositions))

	for wordID, positions := range bodyPositions {
		if len(positions) == 0 {
			continue
		}
		ix.putPostingLocked(ix.body, wordID, urlID, positions)
		wordSet[wordID] = struct{}{}
	}

	for wordID, positions := range titlePositions {
		if len(positions) == 0 {
			continue
		}
		ix.putPostingLocked(ix.title, wordID, urlID, positions)
		wordSet[wordID] = struct{}{}
	}

	words := make([]string, 0, len(wordSet))
	for wordID := range wordSet {
		words = append(words, wordID)
	}
	sort.Strings(words)

	if len(words) > 0 {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[w] = struct{}{}
		}
		ix.forward[urlID] = set
		ix.docWords[urlID] = words
	}
}

// clearLocked removes any existing postings/forward entry for urlID. Must be
// called with mu held.
func (ix *Index) clearLocked(urlID string) {
	for _, wordID := range ix.docWords[urlID] {
		delete(ix.body[wordID], urlID)
		delete(ix.title[wordID], urlID)
	}
	delete(ix.forward, urlID)
	delete(ix.docWords, urlID)
}

func (ix *Index) putPostingLocked(table map[string]map[string]*domain.Posting, wordID, urlID string, positions []int) {
	if table[wordID] == nil {
		table[wordID] = make(map[string]*domain.Posting)
	}
	table[wordID][urlID] = &domain.Posting{
		URLID:     urlID,
		Frequency: len(positions),
		Positions: positions,
	}
}

// BodyPostings returns the postings for wordID in the body index.
func (ix *Index) BodyPostings(wordID string) map[string]*domain.Posting {
	return ix.snapshotPostings(ix.body, wordID)
}

// TitlePostings returns the postings for wordID in the title index.
func (ix *Index) TitlePostings(wordID string) map[string]*domain.Posting {
	return ix.snapshotPostings(ix.title, wordID)
}

func (ix *Index) snapshotPostings(table map[string]map[string]*domain.Posting, wordID string) map[string]*domain.Posting {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	postings, ok := table[wordID]
	if !ok {
		return nil
	}
	out := make(map[string]*domain.Posting, len(postings))
	for urlID, p := range postings {
		out[urlID] = p
	}
	return out
}

// ForwardWords returns the deterministically ordered wordIds indexed for
// urlID.
func (ix *Index) ForwardWords(urlID string) []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	words := ix.docWords[urlID]
	out := make([]string, len(words))
	copy(out, words)
	return out
}

// DocumentFrequency returns the number of distinct documents whose body
// contains wordID, i.e. df(q) for the idf computation.
func (ix *Index) DocumentFrequency(wordID string) int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	return len(ix.body[wordID])
}

// IndexedWordIDs returns every wordId with at least one body or title
// posting.
func (ix *Index) IndexedWordIDs() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	seen := make(map[string]struct{}, len(ix.body)+len(ix.title))
	for wordID := range ix.body {
		seen[wordID] = struct{}{}
	}
	for wordID := range ix.title {
		seen[wordID] = struct{}{}
	}

	ids := make([]string, 0, len(seen))
	for wordID := range seen {
		ids = append(ids, wordID)
	}
	return ids
}

// IndexedURLIDs returns every urlId with a non-empty forward entry.
func (ix *Index) IndexedURLIDs() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	ids := make([]string, 0, len(ix.forward))
	for urlID := range ix.forward {
		ids = append(ids, urlID)
	}
	return ids
}

// DocumentCount returns the number of distinct documents with at least one
// body posting — the N term in the retriever's idf computation.
func (ix *Index) DocumentCount() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, postings := range ix.body {
		for urlID := range postings {
			seen[urlID] = struct{}{}
		}
	}
	return len(seen)
}
