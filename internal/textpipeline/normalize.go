package textpipeline

import (
	"strings"
	"unicode"

	"github.com/blevesearch/go-porterstemmer"
)

// Tokenize splits text into indexable terms: it lowercases, strips
// punctuation, drops stopwords, and reduces each surviving word to its
// Porter stem. The returned slice is in document order and its index is the
// position used by postings and phrase matching — stopwords consume no
// position, so adjacent indexed words remain adjacent for phrase detection.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make([]string, 0, len(fields))
	for _, field := range fields {
		word := strings.ToLower(field)
		if word == "" || isStopword(word) {
			continue
		}
		terms = append(terms, porterstemmer.StemString(word))
	}

	return terms
}

// NormalizeWord applies the same lowercase/stopword/stem pipeline to a
// single query term. Returns ok=false when the word is a stopword or
// normalizes to nothing, in which case it contributes no postings lookup.
func NormalizeWord(raw string) (word string, ok bool) {
	lower := strings.ToLower(strings.TrimFunc(raw, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}))
	if lower == "" || isStopword(lower) {
		return "", false
	}
	return porterstemmer.StemString(lower), true
}
