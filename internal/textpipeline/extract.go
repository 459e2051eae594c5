package textpipeline

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/encoding/charmap"
)

// nonContentSelectors lists elements stripped before extracting body text.
const nonContentSelectors = "script, style, nav, header, footer"

// Page is the content and link graph extracted from one fetched HTML page.
type Page struct {
	Title        string
	Body         string
	Links        []string
	LastModified time.Time
	Size         int
}

// Extract parses an HTTP response body as HTML and extracts the title, body
// text, outbound links (resolved against baseURL), and size/last-modified
// metadata taken from the response headers.
func Extract(baseURL string, header http.Header, body []byte) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(decodeBody(body)))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	bodyText := extractBodyText(doc)
	page := &Page{
		Title: extractTitle(doc),
		Body:  bodyText,
		Size:  pageSize(header, bodyText),
		Links: extractLinks(doc, baseURL),
	}
	page.LastModified = lastModifiedFromHeader(header)

	return page, nil
}

// decodeBody decodes a response body to a UTF-8 string. UTF-8 is preferred;
// a body that isn't valid UTF-8 is assumed Latin-1 (ISO-8859-1), since every
// byte value decodes under that charmap; if that somehow still yields
// invalid UTF-8, invalid bytes are replaced rather than aborting extraction.
func decodeBody(body []byte) string {
	if utf8.Valid(body) {
		return string(body)
	}
	if decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(body); err == nil && utf8.Valid(decoded) {
		return string(decoded)
	}
	return strings.ToValidUTF8(string(body), string(utf8.RuneError))
}

// pageSize reports the page size in bytes: Content-Length when present and
// well-formed, otherwise the byte length of the extracted body text.
func pageSize(header http.Header, bodyText string) int {
	if raw := header.Get("Content-Length"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			return n
		}
	}
	return len(bodyText)
}

// extractTitle prefers <title>, falling back to the og:title meta tag.
func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if ogTitle, exists := doc.Find("meta[property='og:title']").Attr("content"); exists {
		return strings.TrimSpace(ogTitle)
	}
	return ""
}

// extractBodyText prefers <article> content, falling back to <body> with
// non-content elements stripped.
func extractBodyText(doc *goquery.Document) string {
	article := doc.Find("article").First()
	if article.Length() > 0 {
		article.Find(nonContentSelectors).Remove()
		return strings.TrimSpace(article.Text())
	}

	body := doc.Find("body").First()
	if body.Length() > 0 {
		body.Find(nonContentSelectors).Remove()
		return strings.TrimSpace(body.Text())
	}

	return ""
}

// extractLinks collects and resolves every <a href> on the page against
// baseURL, skipping anchors, mailto/tel/javascript links, and malformed URLs.
func extractLinks(doc *goquery.Document, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") ||
			strings.HasPrefix(href, "javascript:") {
			return
		}

		ref, parseErr := url.Parse(href)
		if parseErr != nil {
			return
		}

		resolved := base.ResolveReference(ref).String()
		if _, dup := seen[resolved]; dup {
			return
		}
		seen[resolved] = struct{}{}
		links = append(links, resolved)
	})

	return links
}

// lastModifiedFromHeader parses the Last-Modified response header, falling
// back to the Date header and finally the current time when both are
// absent or malformed.
func lastModifiedFromHeader(header http.Header) time.Time {
	if parsed, ok := parseHTTPDate(header.Get("Last-Modified")); ok {
		return parsed
	}
	if parsed, ok := parseHTTPDate(header.Get("Date")); ok {
		return parsed
	}
	return time.Now().UTC()
}

func parseHTTPDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	parsed, err := http.ParseTime(raw)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
