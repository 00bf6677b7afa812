package collector

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	readability "github.com/go-shiori/go-readability"
)

// pageMeta is what parsePage pulls out of an article page.
type pageMeta struct {
	Title       string
	PublishedAt *time.Time
	Excerpt     string
}

// parsePage extracts title, publication date and a short excerpt from an
// article page. A date that cannot be found or parsed leaves PublishedAt
// nil; only an unusable document is an error.
func parsePage(body []byte, loc *time.Location) (*pageMeta, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse article HTML: %w", err)
	}

	meta := &pageMeta{
		Title:       extractTitle(doc),
		PublishedAt: extractDate(doc, loc),
		Excerpt:     extractExcerpt(doc, body),
	}
	if meta.Title == "" && meta.Excerpt == "" {
		return nil, fmt.Errorf("no usable metadata in article HTML")
	}
	return meta, nil
}

func extractTitle(doc *goquery.Document) string {
	for _, selector := range []string{
		`meta[property="og:title"]`,
		`meta[name="twitter:title"]`,
	} {
		if content, ok := doc.Find(selector).First().Attr("content"); ok {
			if title := strings.TrimSpace(content); title != "" {
				return title
			}
		}
	}
	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// extractDate tries the common publication date carriers in order: meta
// tags, time elements, then JSON-LD. The first value dateparse accepts
// wins.
func extractDate(doc *goquery.Document, loc *time.Location) *time.Time {
	var raw []string

	for _, selector := range []string{
		`meta[property="article:published_time"]`,
		`meta[name="publish_date"]`,
		`meta[name="date"]`,
		`meta[itemprop="datePublished"]`,
	} {
		if content, ok := doc.Find(selector).First().Attr("content"); ok {
			raw = append(raw, content)
		}
	}

	doc.Find("time[datetime]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if datetime, ok := sel.Attr("datetime"); ok {
			raw = append(raw, datetime)
			return false
		}
		return true
	})

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		raw = append(raw, jsonLDDates(sel.Text())...)
	})

	for _, value := range raw {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if t, err := dateparse.ParseIn(value, loc); err == nil {
			parsed := t.In(loc)
			return &parsed
		}
	}
	return nil
}

// jsonLDDates pulls date-bearing fields out of a JSON-LD block, including
// objects nested under @graph.
func jsonLDDates(text string) []string {
	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return nil
	}

	var dates []string
	var walk func(node any)
	walk = func(node any) {
		switch v := node.(type) {
		case map[string]any:
			for _, field := range []string{"datePublished", "dateCreated", "uploadDate"} {
				if s, ok := v[field].(string); ok {
					dates = append(dates, s)
				}
			}
			if graph, ok := v["@graph"]; ok {
				walk(graph)
			}
		case []any:
			for _, item := range v {
				walk(item)
			}
		}
	}
	walk(decoded)
	return dates
}

func extractExcerpt(doc *goquery.Document, body []byte) string {
	for _, selector := range []string{
		`meta[property="og:description"]`,
		`meta[name="description"]`,
	} {
		if content, ok := doc.Find(selector).First().Attr("content"); ok {
			if desc := strings.TrimSpace(content); desc != "" {
				return desc
			}
		}
	}

	var firstParagraph string
	doc.Find("article p, main p, p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if len(text) >= 40 {
			firstParagraph = text
			return false
		}
		return true
	})
	if firstParagraph != "" {
		return firstParagraph
	}

	// Last resort: let readability find the main content block.
	parsed, err := readability.FromReader(bytes.NewReader(body), nil)
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(parsed.TextContent), " ")
}
