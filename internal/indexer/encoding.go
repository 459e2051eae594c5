package indexer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jonesrussell/crawlsearch/internal/domain"
)

// EncodePostings renders an inverted-index value as space-separated
// "urlId;frequency;pos1,pos2,..." entries, ordered by ascending urlId for a
// deterministic, diffable encoding.
func EncodePostings(postings map[string]*domain.Posting) string {
	urlIDs := make([]string, 0, len(postings))
	for urlID := range postings {
		urlIDs = append(urlIDs, urlID)
	}
	sort.Strings(urlIDs)

	entries := make([]string, 0, len(urlIDs))
	for _, urlID := range urlIDs {
		p := postings[urlID]
		positions := make([]string, len(p.Positions))
		for i, pos := range p.Positions {
			positions[i] = strconv.Itoa(pos)
		}
		entries = append(entries, fmt.Sprintf("%s;%d;%s", urlID, p.Frequency, strings.Join(positions, ",")))
	}

	return strings.Join(entries, " ")
}

// DecodePostings parses the value produced by EncodePostings.
func DecodePostings(value string) (map[string]*domain.Posting, error) {
	if value == "" {
		return map[string]*domain.Posting{}, nil
	}

	out := make(map[string]*domain.Posting)
	for _, entry := range strings.Fields(value) {
		parts := strings.Split(entry, ";")
		if len(parts) != 3 {
			return nil, fmt.Errorf("indexer: malformed posting entry %q", entry)
		}

		urlID := parts[0]
		frequency, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("indexer: malformed frequency in %q: %w", entry, err)
		}

		var positions []int
		if parts[2] != "" {
			for _, raw := range strings.Split(parts[2], ",") {
				pos, posErr := strconv.Atoi(raw)
				if posErr != nil {
					return nil, fmt.Errorf("indexer: malformed position in %q: %w", entry, posErr)
				}
				positions = append(positions, pos)
			}
		}

		if validateErr := domain.ValidatePositions(frequency, positions); validateErr != nil {
			return nil, fmt.Errorf("indexer: %q: %w", entry, validateErr)
		}

		out[urlID] = &domain.Posting{URLID: urlID, Frequency: frequency, Positions: positions}
	}

	return out, nil
}

// EncodeForward renders a forward-index value as a space-separated,
// deterministically ordered list of wordIds.
func EncodeForward(wordIDs []string) string {
	sorted := make([]string, len(wordIDs))
	copy(sorted, wordIDs)
	sort.Strings(sorted)
	return strings.Join(sorted, " ")
}

// DecodeForward parses the value produced by EncodeForward.
func DecodeForward(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Fields(value)
}

// EncodeIDList renders a children/parents adjacency value as a
// space-separated, deduplicated list of urlIds.
func EncodeIDList(ids []string) string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	sort.Strings(unique)
	return strings.Join(unique, " ")
}

// DecodeIDList parses the value produced by EncodeIDList.
func DecodeIDList(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Fields(value)
}
