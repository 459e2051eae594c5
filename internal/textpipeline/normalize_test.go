package textpipeline_test

import (
	"reflect"
	"testing"

	"github.com/jonesrussell/crawlsearch/internal/textpipeline"
)

func TestTokenizeDropsStopwordsAndStems(t *testing.T) {
	got := textpipeline.Tokenize("The quick crawlers are crawling the index")

	// "the"/"are" are stopwords and consume no position; "crawlers" stems to
	// "crawler" and "crawling" to "crawl", and the two remain adjacent.
	want := []string{"quick", "crawler", "crawl", "index"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeEmptyInput(t *testing.T) {
	if got := textpipeline.Tokenize(""); len(got) != 0 {
		t.Fatalf("Tokenize(\"\") = %v, want empty", got)
	}
}

func TestTokenizePunctuationSplitsWords(t *testing.T) {
	got := textpipeline.Tokenize("well-known, state-of-the-art search!")
	want := []string{"well", "known", "state", "art", "search"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
}

func TestNormalizeWordStopwordRejected(t *testing.T) {
	if _, ok := textpipeline.NormalizeWord("the"); ok {
		t.Fatalf("NormalizeWord(\"the\") ok = true, want false")
	}
}

func TestNormalizeWordStemsSingleTerm(t *testing.T) {
	got, ok := textpipeline.NormalizeWord("Crawling")
	if !ok {
		t.Fatalf("NormalizeWord() ok = false, want true")
	}
	if want := "crawl"; got != want {
		t.Fatalf("NormalizeWord() = %q, want %q", got, want)
	}
}

func TestNormalizeWordEmptyAfterStrip(t *testing.T) {
	if _, ok := textpipeline.NormalizeWord("---"); ok {
		t.Fatalf("NormalizeWord(\"---\") ok = true, want false")
	}
}
