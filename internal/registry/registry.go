// Package registry maintains the bijective url<->urlId and word<->wordId
// mappings that every other component addresses documents and terms by.
package registry

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jonesrussell/crawlsearch/internal/domain"
)

// URLRegistry assigns a stable, unique urlId to each distinct URL and keeps
// the url<->urlId mapping bijective. Safe for concurrent use.
type URLRegistry struct {
	mu      sync.RWMutex
	byURL   map[string]*domain.Document
	byURLID map[string]*domain.Document
}

// NewURLRegistry creates an empty URL registry.
func NewURLRegistry() *URLRegistry {
	return &URLRegistry{
		byURL:   make(map[string]*domain.Document),
		byURLID: make(map[string]*domain.Document),
	}
}

// GetOrCreate returns the Document for url, creating one with a fresh urlId
// if url has never been seen. The created document starts unfetched, which
// lets the crawler register a discovered link before it is ever visited.
func (r *URLRegistry) GetOrCreate(url string) *domain.Document {
	r.mu.Lock()
	defer r.mu.Unlock()

	if doc, ok := r.byURL[url]; ok {
		return doc
	}

	doc := &domain.Document{
		URLID: uuid.NewString(),
		URL:   url,
	}
	r.byURL[url] = doc
	r.byURLID[doc.URLID] = doc

	return doc
}

// Lookup returns the Document for an already-known url, if any.
func (r *URLRegistry) Lookup(url string) (*domain.Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.byURL[url]
	return doc, ok
}

// ByID returns the Document for a urlId, if any.
func (r *URLRegistry) ByID(urlID string) (*domain.Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.byURLID[urlID]
	return doc, ok
}

// MarkFetched records that a document was successfully fetched by setting
// its Fetched flag. The caller sets its title, size, and last-modified
// timestamp.
func (r *URLRegistry) MarkFetched(doc *domain.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc.Fetched = true
}

// All returns a snapshot slice of every registered document, in no
// particular order. Callers that need determinism should sort by URLID.
func (r *URLRegistry) All() []*domain.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]*domain.Document, 0, len(r.byURLID))
	for _, doc := range r.byURLID {
		docs = append(docs, doc)
	}
	return docs
}

// Len returns the number of distinct URLs registered so far.
func (r *URLRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byURLID)
}

// Restore registers a document loaded from persistent storage, preserving
// its existing urlId instead of minting a new one.
func (r *URLRegistry) Restore(doc *domain.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byURL[doc.URL] = doc
	r.byURLID[doc.URLID] = doc
}
