package retriever_test

import (
	"testing"

	"github.com/jonesrussell/crawlsearch/internal/indexer"
	"github.com/jonesrussell/crawlsearch/internal/registry"
	"github.com/jonesrussell/crawlsearch/internal/retriever"
)

// wordIDs mints (or resolves) a wordId for each literal word via words,
// mirroring how internal/crawler/worker.go builds postings — the index is
// always keyed by wordId, never by surface text.
func wordIDs(words *registry.WordDictionary, terms ...string) map[string][]int {
	out := make(map[string][]int, len(terms))
	for i, term := range terms {
		id := words.GetOrCreate(term).WordID
		out[id] = append(out[id], i)
	}
	return out
}

func TestScoreAppliesTitleBoost(t *testing.T) {
	ix := indexer.New()
	words := registry.NewWordDictionary()

	ix.IndexDocument("doc1", wordIDs(words, "fox"), wordIDs(words, "fox"))
	ix.IndexDocument("doc2", wordIDs(words, "fox"), nil)

	q := &retriever.Query{Terms: map[string]int{"fox": 1}, MaxCount: 1}
	scores := retriever.Score(ix, words, 2, q)

	if scores["doc1"]-scores["doc2"] != retriever.BoostTitleWord {
		t.Fatalf("title boost delta = %v, want %v", scores["doc1"]-scores["doc2"], retriever.BoostTitleWord)
	}
}

func TestScoreUnknownTermContributesNothing(t *testing.T) {
	ix := indexer.New()
	words := registry.NewWordDictionary()
	ix.IndexDocument("doc1", wordIDs(words, "fox"), nil)

	q := &retriever.Query{Terms: map[string]int{"giraffe": 1}, MaxCount: 1}
	scores := retriever.Score(ix, words, 1, q)

	if len(scores) != 0 {
		t.Fatalf("scores = %v, want empty", scores)
	}
}

func TestScorePhraseMatchesOnlyBoostNeverRestrict(t *testing.T) {
	ix := indexer.New()
	words := registry.NewWordDictionary()

	// doc1 contains the phrase "roman empire" in body; doc2 contains both
	// words but not adjacently, so the phrase boost does not apply, yet it
	// still scores via the bareword terms.
	romanID := words.GetOrCreate("roman").WordID
	empireID := words.GetOrCreate("empire").WordID

	ix.IndexDocument("doc1", map[string][]int{romanID: {0}, empireID: {1}}, nil)
	ix.IndexDocument("doc2", map[string][]int{romanID: {0}, empireID: {5}}, nil)

	q := &retriever.Query{
		Terms:    map[string]int{"roman": 1, "empire": 1},
		Phrases:  [][]string{{"roman", "empire"}},
		MaxCount: 1,
	}
	scores := retriever.Score(ix, words, 2, q)

	if _, ok := scores["doc2"]; !ok {
		t.Fatalf("doc2 should still score even though the phrase doesn't match")
	}
	if scores["doc1"] <= scores["doc2"] {
		t.Fatalf("doc1 (phrase match) score %v should exceed doc2 score %v", scores["doc1"], scores["doc2"])
	}
}

func TestScorePhraseWordAbsentFromDictionaryIsNoMatch(t *testing.T) {
	ix := indexer.New()
	words := registry.NewWordDictionary()
	romanID := words.GetOrCreate("roman").WordID
	ix.IndexDocument("doc1", map[string][]int{romanID: {0}}, nil)

	// "empire" was never indexed, so it has no wordId in words; the phrase
	// must not match (and must not panic on a missing lookup).
	q := &retriever.Query{
		Terms:    map[string]int{"roman": 1},
		Phrases:  [][]string{{"roman", "empire"}},
		MaxCount: 1,
	}
	scores := retriever.Score(ix, words, 1, q)

	if scores["doc1"] >= retriever.BoostPhraseBody {
		t.Fatalf("score %v should not include a phrase boost for an unindexed phrase word", scores["doc1"])
	}
}

func TestScoreIDFZeroDocumentFrequencyIsSafe(t *testing.T) {
	ix := indexer.New()
	words := registry.NewWordDictionary()
	words.GetOrCreate("fox")

	q := &retriever.Query{Terms: map[string]int{"fox": 1}, MaxCount: 1}

	scores := retriever.Score(ix, words, 0, q)
	if len(scores) != 0 {
		t.Fatalf("scores = %v, want empty when nothing is indexed", scores)
	}
}
