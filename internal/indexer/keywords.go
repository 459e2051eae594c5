package indexer

import (
	"sort"
	"strings"
)

// KeywordFreq pairs a document's keyword with its body frequency.
type KeywordFreq struct {
	Word string
	Freq int
}

// TopKeywords returns the top n alphabetic words (no digits) of urlID's
// forward entry by descending body frequency, ties broken alphabetically.
// wordText resolves a wordId to its surface text.
func (ix *Index) TopKeywords(urlID string, n int, wordText func(wordID string) (string, bool)) []string {
	freqs := ix.topKeywordFreqsLocked(urlID, n, wordText)

	out := make([]string, len(freqs))
	for i, kf := range freqs {
		out[i] = kf.Word
	}
	return out
}

// TopKeywordFreqs is TopKeywords but also returns each keyword's body
// frequency, for callers (e.g. the crawl report) that surface "word freq".
func (ix *Index) TopKeywordFreqs(urlID string, n int, wordText func(wordID string) (string, bool)) []KeywordFreq {
	return ix.topKeywordFreqsLocked(urlID, n, wordText)
}

func (ix *Index) topKeywordFreqsLocked(urlID string, n int, wordText func(wordID string) (string, bool)) []KeywordFreq {
	var freqs []KeywordFreq
	for _, wordID := range ix.ForwardWords(urlID) {
		p, ok := ix.BodyPostings(wordID)[urlID]
		if !ok {
			continue
		}
		word, ok := wordText(wordID)
		if !ok || containsDigit(word) {
			continue
		}
		freqs = append(freqs, KeywordFreq{Word: word, Freq: p.Frequency})
	}

	sort.Slice(freqs, func(i, j int) bool {
		if freqs[i].Freq != freqs[j].Freq {
			return freqs[i].Freq > freqs[j].Freq
		}
		return freqs[i].Word < freqs[j].Word
	})

	if len(freqs) > n {
		freqs = freqs[:n]
	}
	return freqs
}

func containsDigit(word string) bool {
	return strings.ContainsAny(word, "0123456789")
}
