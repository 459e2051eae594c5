package registry

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jonesrussell/crawlsearch/internal/domain"
)

// WordDictionary assigns a stable, unique wordId to each distinct normalized
// word and keeps the word<->wordId mapping bijective. Safe for concurrent use.
type WordDictionary struct {
	mu       sync.RWMutex
	byWord   map[string]*domain.Word
	byWordID map[string]*domain.Word
}

// NewWordDictionary creates an empty word dictionary.
func NewWordDictionary() *WordDictionary {
	return &WordDictionary{
		byWord:   make(map[string]*domain.Word),
		byWordID: make(map[string]*domain.Word),
	}
}

// GetOrCreate returns the Word entry for word, creating one with a fresh
// wordId if the word has never been seen.
func (d *WordDictionary) GetOrCreate(word string) *domain.Word {
	d.mu.Lock()
	defer d.mu.Unlock()

	if w, ok := d.byWord[word]; ok {
		return w
	}

	w := &domain.Word{
		WordID: uuid.NewString(),
		Word:   word,
	}
	d.byWord[word] = w
	d.byWordID[w.WordID] = w

	return w
}

// Lookup returns the Word entry for an already-known normalized word.
func (d *WordDictionary) Lookup(word string) (*domain.Word, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	w, ok := d.byWord[word]
	return w, ok
}

// ByID returns the Word entry for a wordId.
func (d *WordDictionary) ByID(wordID string) (*domain.Word, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	w, ok := d.byWordID[wordID]
	return w, ok
}

// Len returns the number of distinct words registered so far.
func (d *WordDictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.byWordID)
}

// Word resolves a wordId to its surface word text, for callers that only
// need the text and not the full Word entry.
func (d *WordDictionary) Word(wordID string) (string, bool) {
	w, ok := d.ByID(wordID)
	if !ok {
		return "", false
	}
	return w.Word, true
}

// AllIDs returns every wordId currently registered, in no particular order.
func (d *WordDictionary) AllIDs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ids := make([]string, 0, len(d.byWordID))
	for id := range d.byWordID {
		ids = append(ids, id)
	}
	return ids
}

// Restore registers a word entry loaded from persistent storage, preserving
// its existing wordId instead of minting a new one.
func (d *WordDictionary) Restore(w *domain.Word) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.byWord[w.Word] = w
	d.byWordID[w.WordID] = w
}
