// Package api exposes the retriever over a thin read-only HTTP surface.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/crawlsearch/internal/logger"
	"github.com/jonesrussell/crawlsearch/internal/retriever"
)

// unknownTitleSentinel renders in place of a document's title when it is
// empty: the page was never successfully fetched, or it has no title.
const unknownTitleSentinel = "(untitled)"

// searchHit is the wire shape of one result in a /search response.
type searchHit struct {
	URL          string   `json:"url"`
	Title        string   `json:"title"`
	Score        float64  `json:"score"`
	LastModified string   `json:"last_modified,omitempty"`
	Size         int      `json:"size"`
	Keywords     []string `json:"keywords"`
	Parents      []string `json:"parents"`
	Children     []string `json:"children"`
}

// NewRouter builds a gin engine exposing GET /search?q=... and GET /health
// over ret.
func NewRouter(ret *retriever.Retriever, log logger.Interface) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/search", func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
			return
		}

		hits := ret.Search(query)
		out := make([]searchHit, 0, len(hits))
		for _, h := range hits {
			if h.Document.URL == "" {
				continue
			}

			title := h.Document.Title
			if title == "" {
				title = unknownTitleSentinel
			}

			var lastModified string
			if !h.Document.LastModified.IsZero() {
				lastModified = h.Document.LastModified.Format(time.RFC3339)
			}

			out = append(out, searchHit{
				URL:          h.Document.URL,
				Title:        title,
				Score:        h.Score,
				LastModified: lastModified,
				Size:         h.Document.Size,
				Keywords:     h.Keywords,
				Parents:      h.Parents,
				Children:     h.Children,
			})
		}

		log.Info("search served", "query", query, "results", len(out))
		c.JSON(http.StatusOK, gin.H{"query": query, "results": out})
	})

	return r
}
