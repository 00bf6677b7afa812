package collector

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"

	"github.com/okozlov/music-trends/app/sources"
)

// discoverFeed lists candidate articles from the source's RSS/Atom feed.
func (c *Collector) discoverFeed(ctx context.Context, src sources.Source) ([]Candidate, error) {
	if src.FeedURL == "" {
		return nil, fmt.Errorf("source %q has no feed URL", src.Name)
	}

	result, err := c.client.Get(ctx, src.FeedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(result.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	candidates := make([]Candidate, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || item.Link == "" {
			continue
		}
		candidate := Candidate{
			URL:   item.Link,
			Title: item.Title,
		}
		if item.PublishedParsed != nil {
			candidate.PublishedAt = item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			candidate.PublishedAt = item.UpdatedParsed
		}
		candidates = append(candidates, candidate)
	}

	return candidates, nil
}
