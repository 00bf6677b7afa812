package article

import (
	"sort"
	"strings"
	"time"
)

// ExcerptLimit caps the stored excerpt. Only title, URL, date and a short
// excerpt are retained from fetched pages, never the full body.
const ExcerptLimit = 300

type FetchStatus string

const (
	StatusFetched       FetchStatus = "fetched"
	StatusCached        FetchStatus = "cached"
	StatusFailed        FetchStatus = "failed"
	StatusRobotsBlocked FetchStatus = "robots_blocked"
)

// Article is produced by a source adapter on successful parse and is not
// mutated afterwards.
type Article struct {
	URL         string
	SourceName  string
	Title       string
	PublishedAt *time.Time // nil when the page carried no parseable date
	Excerpt     string
	FetchStatus FetchStatus
	Summary     []string // extractive bullets, derived from title and excerpt
}

// Excerpt collapses whitespace and truncates text to ExcerptLimit characters.
// The limit counts runes, not bytes, so truncation never splits a multibyte
// character.
func Excerpt(text string) string {
	compact := strings.Join(strings.Fields(text), " ")
	runes := []rune(compact)
	if len(runes) <= ExcerptLimit {
		return compact
	}
	return strings.TrimRight(string(runes[:ExcerptLimit-3]), " ") + "..."
}

// SortByDateDesc orders articles newest first, undated articles last. Ties
// fall back to URL so the order is stable across runs.
func SortByDateDesc(articles []Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i], articles[j]
		switch {
		case a.PublishedAt == nil && b.PublishedAt == nil:
			return a.URL < b.URL
		case a.PublishedAt == nil:
			return false
		case b.PublishedAt == nil:
			return true
		case a.PublishedAt.Equal(*b.PublishedAt):
			return a.URL < b.URL
		default:
			return a.PublishedAt.After(*b.PublishedAt)
		}
	})
}
