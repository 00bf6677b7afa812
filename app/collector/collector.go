package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/okozlov/music-trends/app/article"
	"github.com/okozlov/music-trends/app/diagnostics"
	"github.com/okozlov/music-trends/app/fetch"
	"github.com/okozlov/music-trends/app/sources"
)

// Collector turns one source definition into a set of kept articles. It is
// safe to run one CollectSource per source concurrently: the fetch client,
// its gate and the diagnostics collector serialize their own state.
type Collector struct {
	client       *fetch.Client
	diag         *diagnostics.Collector
	window       article.Window
	maxPerSource int
	location     *time.Location
}

func New(client *fetch.Client, diag *diagnostics.Collector, window article.Window,
	maxPerSource int, location *time.Location) *Collector {
	return &Collector{
		client:       client,
		diag:         diag,
		window:       window,
		maxPerSource: maxPerSource,
		location:     location,
	}
}

// CollectSource discovers candidate URLs for one source, fetches and parses
// each page, and returns the articles the date window keeps. Individual
// failures are counted and skipped; only a discovery failure on both paths
// is an error, so the caller can retry the whole source.
func (c *Collector) CollectSource(ctx context.Context, src sources.Source) ([]article.Article, error) {
	candidates, err := c.discover(ctx, src)
	if err != nil {
		return nil, err
	}

	c.diag.Update(src.Name, func(s *diagnostics.SourceStats) {
		s.Discovered += len(candidates)
	})

	if len(candidates) > c.maxPerSource {
		slog.Debug("Per-source cap reached, truncating candidates",
			"source", src.Name, "discovered", len(candidates), "cap", c.maxPerSource)
		candidates = candidates[:c.maxPerSource]
	}

	var kept []article.Article
	for _, candidate := range candidates {
		if ctx.Err() != nil {
			slog.Debug("Collection cancelled, returning partial results",
				"source", src.Name, "kept", len(kept))
			break
		}
		if a, ok := c.processCandidate(ctx, src, candidate); ok {
			kept = append(kept, a)
		}
	}

	slog.Info("Source collected", "source", src.Name,
		"discovered", len(candidates), "kept", len(kept))
	return kept, nil
}

// discover runs the source's primary discovery path and falls back to the
// other path when the primary fails or yields nothing.
func (c *Collector) discover(ctx context.Context, src sources.Source) ([]Candidate, error) {
	type path struct {
		name string
		run  func(context.Context, sources.Source) ([]Candidate, error)
	}

	primary := path{"feed", c.discoverFeed}
	fallback := path{"listing", c.discoverListing}
	if src.Mode == sources.ModeHTMLPrimary {
		primary, fallback = fallback, primary
	}

	candidates, err := primary.run(ctx, src)
	if err != nil {
		slog.Warn("Primary discovery failed, trying fallback",
			"source", src.Name, "path", primary.name, "error", err)
	} else if len(candidates) == 0 {
		slog.Warn("Primary discovery yielded no candidates, trying fallback",
			"source", src.Name, "path", primary.name)
	} else {
		return c.dedupeCandidates(candidates), nil
	}

	candidates, err = fallback.run(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("discovery failed for source %q: %w", src.Name, err)
	}
	return c.dedupeCandidates(candidates), nil
}

// dedupeCandidates drops repeat URLs within one source's discovery,
// first-seen wins.
func (c *Collector) dedupeCandidates(candidates []Candidate) []Candidate {
	seen := make(map[string]bool, len(candidates))
	out := make([]Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		key := article.CanonicalURL(candidate.URL)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, candidate)
	}
	return out
}

func (c *Collector) processCandidate(ctx context.Context, src sources.Source, candidate Candidate) (article.Article, bool) {
	c.diag.Update(src.Name, func(s *diagnostics.SourceStats) {
		s.Attempted++
	})

	result, err := c.client.Get(ctx, candidate.URL)
	if err != nil {
		counter := func(s *diagnostics.SourceStats) { s.Failures++ }
		if errors.Is(err, fetch.ErrRobotsBlocked) {
			counter = func(s *diagnostics.SourceStats) { s.RobotsBlocked++ }
		}
		c.diag.Update(src.Name, counter)
		slog.Debug("Candidate fetch failed", "source", src.Name,
			"url", candidate.URL, "error", err)
		return article.Article{}, false
	}

	status := article.StatusFetched
	if result.FromCache {
		status = article.StatusCached
	}
	c.diag.Update(src.Name, func(s *diagnostics.SourceStats) {
		if result.FromCache {
			s.Cached++
		} else {
			s.Fetched++
		}
	})

	meta, err := parsePage(result.Body, c.location)
	if err != nil {
		c.diag.Update(src.Name, func(s *diagnostics.SourceStats) {
			s.ParseFailures++
		})
		slog.Debug("Candidate parse failed", "source", src.Name,
			"url", candidate.URL, "error", err)
		return article.Article{}, false
	}

	a := article.Article{
		URL:         candidate.URL,
		SourceName:  src.Name,
		Title:       meta.Title,
		PublishedAt: meta.PublishedAt,
		Excerpt:     article.Excerpt(meta.Excerpt),
		FetchStatus: status,
	}
	if a.Title == "" {
		a.Title = candidate.Title
	}
	if a.PublishedAt == nil {
		a.PublishedAt = candidate.PublishedAt
	}

	switch c.window.Classify(a.PublishedAt) {
	case article.OutOfRange:
		c.diag.Update(src.Name, func(s *diagnostics.SourceStats) {
			s.DroppedOutOfRange++
		})
		return article.Article{}, false
	case article.UndatedKept:
		c.diag.Update(src.Name, func(s *diagnostics.SourceStats) {
			s.KeptMissingDate++
		})
	default:
		c.diag.Update(src.Name, func(s *diagnostics.SourceStats) {
			s.KeptInRange++
		})
	}

	return a, true
}
