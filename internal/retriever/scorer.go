package retriever

import (
	"math"

	"github.com/jonesrussell/crawlsearch/internal/domain"
	"github.com/jonesrussell/crawlsearch/internal/indexer"
	"github.com/jonesrussell/crawlsearch/internal/registry"
)

// Boost constants applied on top of the tf·idf contribution.
const (
	// BoostTitleWord is added for every (query term, document) pair where
	// the term occurs in the document's title.
	BoostTitleWord = 7.0
	// BoostPhraseTitle is added for every quoted phrase that matches
	// positionally in the document's title.
	BoostPhraseTitle = 10.0
	// BoostPhraseBody is added for every quoted phrase that matches
	// positionally in the document's body.
	BoostPhraseBody = 3.0
)

// Score computes a tf·idf-plus-boosts score for every document that
// contains at least one query term or matches at least one phrase. Query
// words are resolved to their wordId via words before any postings lookup,
// since the index is keyed by wordId, not by surface text (spec.md §4.4:
// "For each normalized word, look up its wordId in the dictionary"). A word
// absent from words contributes nothing. Phrase matches only ever add to a
// score; they never restrict the result set.
func Score(index *indexer.Index, words *registry.WordDictionary, totalDocs int, q *Query) map[string]float64 {
	scores := make(map[string]float64)

	for term, count := range q.Terms {
		word, ok := words.Lookup(term)
		if !ok {
			continue
		}
		scoreTerm(index, totalDocs, word.WordID, count, q.MaxCount, scores)
	}

	for _, phrase := range q.Phrases {
		wordIDs := resolvePhrase(words, phrase)
		if wordIDs == nil {
			continue
		}
		applyPhraseBoost(index.TitlePostings, wordIDs, BoostPhraseTitle, scores)
		applyPhraseBoost(index.BodyPostings, wordIDs, BoostPhraseBody, scores)
	}

	return scores
}

// resolvePhrase resolves every word in phrase to its wordId, returning nil
// if any word is absent from the dictionary — an unindexed word can never
// appear in a posting, so the whole phrase can never match.
func resolvePhrase(words *registry.WordDictionary, phrase []string) []string {
	wordIDs := make([]string, len(phrase))
	for i, word := range phrase {
		w, ok := words.Lookup(word)
		if !ok {
			return nil
		}
		wordIDs[i] = w.WordID
	}
	return wordIDs
}

func scoreTerm(index *indexer.Index, totalDocs int, wordID string, count, maxCount int, scores map[string]float64) {
	titlePostings := index.TitlePostings(wordID)
	for urlID := range titlePostings {
		scores[urlID] += BoostTitleWord
	}

	bodyPostings := index.BodyPostings(wordID)
	if len(bodyPostings) == 0 {
		return
	}

	df := len(bodyPostings)
	idf := 0.0
	if df > 0 && totalDocs > 0 {
		idf = math.Log2(float64(totalDocs) / float64(df))
	}

	maxTF := 0
	for _, p := range bodyPostings {
		if p.Frequency > maxTF {
			maxTF = p.Frequency
		}
	}
	if maxTF == 0 {
		return
	}

	weight := 1.0
	if maxCount > 0 {
		weight = float64(count) / float64(maxCount)
	}

	for urlID, p := range bodyPostings {
		tf := float64(p.Frequency) / float64(maxTF)
		scores[urlID] += weight * tf * idf
	}
}

// applyPhraseBoost adds boost to every urlId whose postings (from the
// fieldPostings lookup) contain phraseWordIDs as a run of strictly
// consecutive positions. phraseWordIDs is the phrase's words already
// resolved to wordIds.
func applyPhraseBoost(
	fieldPostings func(wordID string) map[string]*domain.Posting,
	phraseWordIDs []string,
	boost float64,
	scores map[string]float64,
) {
	if len(phraseWordIDs) == 0 {
		return
	}

	first := fieldPostings(phraseWordIDs[0])
	if len(first) == 0 {
		return
	}

	rest := make([]map[string]*domain.Posting, len(phraseWordIDs)-1)
	for i, wordID := range phraseWordIDs[1:] {
		rest[i] = fieldPostings(wordID)
	}

	for urlID, posting := range first {
		if matchesPhraseAt(urlID, posting.Positions, rest) {
			scores[urlID] += boost
		}
	}
}

// matchesPhraseAt reports whether, for some starting position in
// firstPositions, every subsequent phrase word has a posting at urlID with
// the next consecutive position.
func matchesPhraseAt(urlID string, firstPositions []int, rest []map[string]*domain.Posting) bool {
	for _, start := range firstPositions {
		if phraseContinuesFrom(urlID, start, rest) {
			return true
		}
	}
	return false
}

func phraseContinuesFrom(urlID string, start int, rest []map[string]*domain.Posting) bool {
	want := start
	for _, postings := range rest {
		want++
		p, ok := postings[urlID]
		if !ok || !hasPosition(p.Positions, want) {
			return false
		}
	}
	return true
}

func hasPosition(positions []int, target int) bool {
	for _, p := range positions {
		if p == target {
			return true
		}
	}
	return false
}
