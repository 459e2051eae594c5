// Package retriever parses queries, scores candidate documents by tf·idf
// with title and phrase boosts, ranks them, and hydrates results with
// document metadata.
package retriever

import (
	"strings"

	"github.com/jonesrussell/crawlsearch/internal/textpipeline"
)

// Query is a parsed search query: a bag of normalized single terms with
// their in-query counts, plus any quoted phrases as ordered normalized word
// sequences.
type Query struct {
	Terms    map[string]int
	Phrases  [][]string
	MaxCount int
}

// ParseQuery splits raw on whitespace, treating double-quoted spans as
// phrases. Each bare word and each word inside a phrase is normalized
// (lowercased, stemmed, stopwords dropped) the same way indexed text is.
// Words a phrase loses to normalization are simply omitted from it; a phrase
// that normalizes to nothing matches no document.
func ParseQuery(raw string) *Query {
	q := &Query{Terms: make(map[string]int)}

	for _, tok := range splitQuotedFields(raw) {
		if strings.HasPrefix(tok, `"`) && strings.HasSuffix(tok, `"`) && len(tok) >= 2 {
			phrase := normalizeWords(strings.Fields(tok[1 : len(tok)-1]))
			if len(phrase) > 0 {
				q.Phrases = append(q.Phrases, phrase)
			}
			continue
		}

		for _, word := range normalizeWords(strings.Fields(tok)) {
			q.Terms[word]++
		}
	}

	for _, count := range q.Terms {
		if count > q.MaxCount {
			q.MaxCount = count
		}
	}

	return q
}

func normalizeWords(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		out = append(out, textpipeline.Tokenize(w)...)
	}
	return out
}

// splitQuotedFields splits raw on whitespace outside of double-quoted
// spans, returning each quoted span (including its quotes) as one token.
func splitQuotedFields(raw string) []string {
	var tokens []string
	var cur strings.Builder
	inQuotes := false

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for _, r := range raw {
		switch {
		case r == '"':
			cur.WriteRune(r)
			if inQuotes {
				flush()
			}
			inQuotes = !inQuotes
		case r == ' ' || r == '\t' || r == '\n':
			if inQuotes {
				cur.WriteRune(r)
			} else {
				flush()
			}
		default:
			cur.WriteRune(r)
		}
	}
	flush()

	return tokens
}
