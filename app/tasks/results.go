package tasks

import (
	"sync"

	"github.com/okozlov/music-trends/app/article"
)

// Results gathers per-source articles from concurrent collect tasks.
// Flatten produces a deterministic order regardless of task completion
// order.
type Results struct {
	mu       sync.Mutex
	bySource map[string][]article.Article
}

func NewResults() *Results {
	return &Results{
		bySource: make(map[string][]article.Article),
	}
}

func (r *Results) Add(sourceName string, articles []article.Article) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bySource[sourceName] = append(r.bySource[sourceName], articles...)
}

// Flatten concatenates articles following the given source order, so
// downstream first-seen deduplication is reproducible across runs.
func (r *Results) Flatten(sourceOrder []string) []article.Article {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []article.Article
	for _, name := range sourceOrder {
		out = append(out, r.bySource[name]...)
	}
	return out
}
