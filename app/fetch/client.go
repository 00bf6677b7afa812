package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/okozlov/music-trends/app/article"
	"github.com/okozlov/music-trends/app/database"
)

var (
	// ErrRobotsBlocked marks a URL disallowed by robots.txt. Permanent for
	// the run, never retried.
	ErrRobotsBlocked = errors.New("blocked by robots.txt")
	// ErrLoginWall marks a response behind authentication or a paywall.
	ErrLoginWall = errors.New("login or paywall response")
)

// Result is the outcome of a successful page retrieval.
type Result struct {
	Body       []byte
	StatusCode int
	FromCache  bool
}

// Client retrieves pages through the politeness gate with a session cache in
// front of the network. A nil cache repository disables caching.
type Client struct {
	httpClient *http.Client
	gate       *Gate
	cache      database.PageRepository
	userAgent  string

	cacheWarn sync.Once
}

func NewClient(httpClient *http.Client, gate *Gate, cache database.PageRepository, userAgent string) *Client {
	return &Client{
		httpClient: httpClient,
		gate:       gate,
		cache:      cache,
		userAgent:  userAgent,
	}
}

// Get returns the page at rawURL, from cache when possible. Transient
// network failures are retried once; robots blocks and login walls are
// reported through the sentinel errors.
func (c *Client) Get(ctx context.Context, rawURL string) (*Result, error) {
	key := article.CanonicalURL(rawURL)

	if c.cache != nil {
		page, err := c.cache.GetPage(key)
		if err != nil {
			c.warnCacheDegraded(err)
		} else if page != nil {
			return &Result{Body: page.Body, StatusCode: page.Status, FromCache: true}, nil
		}
	}

	if !c.gate.MayFetch(ctx, rawURL) {
		return nil, ErrRobotsBlocked
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if err := c.gate.AcquireSlot(ctx, u.Host); err != nil {
		return nil, err
	}

	resp, err := c.doWithRetry(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		err := c.cache.SavePage(database.Page{
			URL:       key,
			Status:    resp.StatusCode,
			Body:      resp.Body,
			FetchedAt: time.Now(),
		})
		if err != nil {
			c.warnCacheDegraded(err)
		}
	}

	return resp, nil
}

// transientError marks failures worth one retry: transport-level problems,
// as opposed to definitive HTTP status responses.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func (c *Client) doWithRetry(ctx context.Context, rawURL string) (*Result, error) {
	result, err := c.doOnce(ctx, rawURL)

	var transient *transientError
	if err == nil || !errors.As(err, &transient) || ctx.Err() != nil {
		return result, err
	}

	slog.Debug("Request failed, retrying once", "url", rawURL, "error", err)
	return c.doOnce(ctx, rawURL)
}

func (c *Client) doOnce(ctx context.Context, rawURL string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-GB,en;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &transientError{err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: HTTP %d for %s", ErrLoginWall, resp.StatusCode, rawURL)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Result{Body: body, StatusCode: resp.StatusCode}, nil
}

func (c *Client) warnCacheDegraded(err error) {
	c.cacheWarn.Do(func() {
		slog.Warn("Fetch cache unavailable, falling back to direct fetches", "error", err)
	})
}
