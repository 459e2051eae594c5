package retriever_test

import (
	"reflect"
	"testing"

	"github.com/jonesrussell/crawlsearch/internal/retriever"
	"github.com/jonesrussell/crawlsearch/internal/textpipeline"
)

func TestParseQuerySplitsBarewordsAndPhrases(t *testing.T) {
	q := retriever.ParseQuery(`fox "quick brown" dog`)

	if len(q.Phrases) != 1 {
		t.Fatalf("got %d phrases, want 1", len(q.Phrases))
	}
	if want := []string{"quick", "brown"}; !reflect.DeepEqual(q.Phrases[0], want) {
		t.Fatalf("phrase = %v, want %v", q.Phrases[0], want)
	}

	for _, term := range []string{"fox", "dog"} {
		if q.Terms[term] != 1 {
			t.Fatalf("Terms[%q] = %d, want 1", term, q.Terms[term])
		}
	}
}

func TestParseQueryCountsRepeatedTermsAndTracksMax(t *testing.T) {
	q := retriever.ParseQuery("fox fox dog")

	if q.Terms["fox"] != 2 {
		t.Fatalf("Terms[fox] = %d, want 2", q.Terms["fox"])
	}
	if q.Terms["dog"] != 1 {
		t.Fatalf("Terms[dog] = %d, want 1", q.Terms["dog"])
	}
	if q.MaxCount != 2 {
		t.Fatalf("MaxCount = %d, want 2", q.MaxCount)
	}
}

func TestParseQueryDropsStopwordsFromPhrase(t *testing.T) {
	// "the" is a stopword; its slot in the phrase collapses, leaving the
	// surviving normalized words in order.
	q := retriever.ParseQuery(`"the roman empire"`)

	roman, _ := textpipeline.NormalizeWord("roman")
	empire, _ := textpipeline.NormalizeWord("empire")

	if len(q.Phrases) != 1 {
		t.Fatalf("got %d phrases, want 1", len(q.Phrases))
	}
	if want := []string{roman, empire}; !reflect.DeepEqual(q.Phrases[0], want) {
		t.Fatalf("phrase = %v, want %v", q.Phrases[0], want)
	}
}

func TestParseQueryEmptyStringYieldsEmptyQuery(t *testing.T) {
	q := retriever.ParseQuery("")

	if len(q.Terms) != 0 || len(q.Phrases) != 0 {
		t.Fatalf("expected empty query, got terms=%v phrases=%v", q.Terms, q.Phrases)
	}
}

func TestParseQueryPhraseThatNormalizesToNothingIsDropped(t *testing.T) {
	q := retriever.ParseQuery(`"the of and"`)

	if len(q.Phrases) != 0 {
		t.Fatalf("got %d phrases, want 0 (all words are stopwords)", len(q.Phrases))
	}
}
