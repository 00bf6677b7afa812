package trends

import (
	"sort"
	"time"

	"github.com/okozlov/music-trends/app/article"
	"github.com/okozlov/music-trends/app/nlp"
)

// EvidenceLimit caps how many supporting mentions a trend entry displays.
// Counts stay exact over the full set.
const EvidenceLimit = 5

// Evidence points at one contributing article.
type Evidence struct {
	Title       string
	SourceName  string
	PublishedAt *time.Time
}

// Entry is one aggregated entity: its surface form, category, exact count
// and up to EvidenceLimit supporting articles in processing order.
type Entry struct {
	Text     string
	Label    string
	Count    int
	Evidence []Evidence
}

// Aggregate groups mentions by folded entity text and label, counts them
// and ranks the result: count descending, ties broken by entity text
// ascending so output is deterministic.
func Aggregate(mentions []nlp.Mention, articles []article.Article) []Entry {
	lookup := make(map[string]article.Article, len(articles))
	for _, a := range articles {
		lookup[article.CanonicalURL(a.URL)] = a
	}

	type group struct {
		entry Entry
		key   string
	}
	byKey := make(map[string]*group)
	var order []string

	for _, m := range mentions {
		key := nlp.FoldKey(m.Text) + "\x00" + m.Label
		g, ok := byKey[key]
		if !ok {
			g = &group{
				entry: Entry{Text: m.Text, Label: m.Label},
				key:   nlp.FoldKey(m.Text),
			}
			byKey[key] = g
			order = append(order, key)
		}
		g.entry.Count++

		if len(g.entry.Evidence) < EvidenceLimit {
			if a, ok := lookup[article.CanonicalURL(m.ArticleURL)]; ok {
				g.entry.Evidence = append(g.entry.Evidence, Evidence{
					Title:       a.Title,
					SourceName:  a.SourceName,
					PublishedAt: a.PublishedAt,
				})
			}
		}
	}

	groups := make([]*group, 0, len(order))
	for _, key := range order {
		groups = append(groups, byKey[key])
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].entry.Count != groups[j].entry.Count {
			return groups[i].entry.Count > groups[j].entry.Count
		}
		return groups[i].key < groups[j].key
	})

	entries := make([]Entry, 0, len(groups))
	for _, g := range groups {
		entries = append(entries, g.entry)
	}
	return entries
}
