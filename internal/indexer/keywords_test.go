package indexer_test

import (
	"reflect"
	"testing"

	"github.com/jonesrussell/crawlsearch/internal/indexer"
)

func TestTopKeywordsOrdersByFrequencyThenAlphabetically(t *testing.T) {
	ix := indexer.New()
	ix.IndexDocument("doc1", map[string][]int{
		"w-crawl":    {0, 1, 2}, // freq 3
		"w-index":    {3, 4},    // freq 2
		"w-retrieve": {5, 6},    // freq 2, ties with w-index alphabetically after "index"
	}, nil)

	words := map[string]string{"w-crawl": "crawl", "w-index": "index", "w-retrieve": "retrieve"}
	lookup := func(id string) (string, bool) {
		w, ok := words[id]
		return w, ok
	}

	got := ix.TopKeywords("doc1", 10, lookup)
	want := []string{"crawl", "index", "retrieve"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TopKeywords() = %v, want %v", got, want)
	}
}

func TestTopKeywordsRespectsLimit(t *testing.T) {
	ix := indexer.New()
	ix.IndexDocument("doc1", map[string][]int{
		"a": {0}, "b": {1}, "c": {2},
	}, nil)

	lookup := func(id string) (string, bool) { return id, true }

	got := ix.TopKeywords("doc1", 2, lookup)
	if len(got) != 2 {
		t.Fatalf("TopKeywords() len = %d, want 2", len(got))
	}
}

func TestTopKeywordsDropsWordsContainingDigits(t *testing.T) {
	ix := indexer.New()
	ix.IndexDocument("doc1", map[string][]int{
		"w-plain": {0, 1, 2}, // freq 3
		"w-year":  {3, 4},    // freq 2, but its surface form has a digit
	}, nil)

	words := map[string]string{"w-plain": "crawl", "w-year": "2024"}
	lookup := func(id string) (string, bool) {
		w, ok := words[id]
		return w, ok
	}

	got := ix.TopKeywords("doc1", 10, lookup)
	want := []string{"crawl"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TopKeywords() = %v, want %v", got, want)
	}
}

func TestTopKeywordFreqsIncludesFrequency(t *testing.T) {
	ix := indexer.New()
	ix.IndexDocument("doc1", map[string][]int{"w-crawl": {0, 1}}, nil)

	lookup := func(id string) (string, bool) { return "crawl", true }

	got := ix.TopKeywordFreqs("doc1", 10, lookup)
	want := []indexer.KeywordFreq{{Word: "crawl", Freq: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TopKeywordFreqs() = %v, want %v", got, want)
	}
}

func TestTopKeywordsUnknownDocumentIsEmpty(t *testing.T) {
	ix := indexer.New()
	lookup := func(id string) (string, bool) { return id, true }

	if got := ix.TopKeywords("missing", 10, lookup); len(got) != 0 {
		t.Fatalf("TopKeywords() for unknown document = %v, want empty", got)
	}
}
