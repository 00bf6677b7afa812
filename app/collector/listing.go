package collector

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/okozlov/music-trends/app/article"
	"github.com/okozlov/music-trends/app/sources"
)

// discoverListing lists candidate articles from the source's HTML listing
// page. Only same-host links are kept, optionally narrowed by the source's
// link filter.
func (c *Collector) discoverListing(ctx context.Context, src sources.Source) ([]Candidate, error) {
	if src.ListingURL == "" {
		return nil, fmt.Errorf("source %q has no listing URL", src.Name)
	}

	base, err := url.Parse(src.ListingURL)
	if err != nil {
		return nil, fmt.Errorf("invalid listing URL %q: %w", src.ListingURL, err)
	}

	result, err := c.client.Get(ctx, src.ListingURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(result.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing HTML: %w", err)
	}

	listingKey := article.CanonicalURL(src.ListingURL)
	seen := make(map[string]bool)
	var candidates []Candidate

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		if !strings.EqualFold(resolved.Host, base.Host) {
			return
		}
		if src.LinkFilter != "" && !strings.Contains(resolved.Path, src.LinkFilter) {
			return
		}

		key := article.CanonicalURL(resolved.String())
		if key == listingKey || seen[key] {
			return
		}
		seen[key] = true
		candidates = append(candidates, Candidate{URL: resolved.String()})
	})

	return candidates, nil
}
