// Package report renders a human-readable crawl summary: one block per
// registered document with its metadata, top keywords, and child links.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonesrussell/crawlsearch/internal/indexer"
	"github.com/jonesrussell/crawlsearch/internal/registry"
)

// separator delimits one document's block from the next.
const separator = "------------------------------" // 30 dashes

// topKeywordCount and maxChildLinks bound the crawl summary's per-document
// detail, matching the reference report's "top-10 keywords" / "up to 10
// child links" shape.
const (
	topKeywordCount = 10
	maxChildLinks   = 10
)

// Write renders a crawl summary to w: for every registered document, its
// title, URL, last-modified time and size, top keywords as "word freq", and
// up to maxChildLinks child links.
func Write(w io.Writer, urls *registry.URLRegistry, words *registry.WordDictionary, index *indexer.Index, graph *registry.LinkGraph) error {
	docs := urls.All()
	sort.Slice(docs, func(i, j int) bool { return docs[i].URLID < docs[j].URLID })

	for _, doc := range docs {
		keywords := index.TopKeywordFreqs(doc.URLID, topKeywordCount, words.Word)
		keywordLines := make([]string, len(keywords))
		for i, kf := range keywords {
			keywordLines[i] = fmt.Sprintf("%s %d", kf.Word, kf.Freq)
		}

		children := graph.Children(doc.URLID)
		sort.Strings(children)
		if len(children) > maxChildLinks {
			children = children[:maxChildLinks]
		}
		childLinks := make([]string, 0, len(children))
		for _, childID := range children {
			if child, ok := urls.ByID(childID); ok {
				childLinks = append(childLinks, child.URL)
			}
		}

		if _, err := fmt.Fprintf(w,
			"Title: %s\nURL: %s\nLast-Modified: %s\nSize: %d\nKeywords: %s\nChild Links:\n%s\n%s\n",
			doc.Title,
			doc.URL,
			doc.LastModified.Format("2006-01-02T15:04:05Z07:00"),
			doc.Size,
			strings.Join(keywordLines, "; "),
			strings.Join(childLinks, "\n"),
			separator,
		); err != nil {
			return err
		}
	}

	return nil
}
