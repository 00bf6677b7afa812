package fetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// Gate enforces crawl politeness: robots.txt rules per host and a minimum
// delay between requests to the same host. One gate is shared by all source
// tasks of a run, so both maps are guarded.
type Gate struct {
	httpClient *http.Client
	userAgent  string
	minDelay   time.Duration

	robotsMu sync.Mutex
	robots   map[string]*robotstxt.RobotsData // nil entry: robots.txt unavailable, allow

	slotMu   sync.Mutex
	nextSlot map[string]time.Time

	// Injectable for tests with a fake clock.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func NewGate(httpClient *http.Client, userAgent string, minDelay time.Duration) *Gate {
	return &Gate{
		httpClient: httpClient,
		userAgent:  userAgent,
		minDelay:   minDelay,
		robots:     make(map[string]*robotstxt.RobotsData),
		nextSlot:   make(map[string]time.Time),
		now:        time.Now,
		sleep:      sleepContext,
	}
}

// MayFetch reports whether robots.txt allows fetching the URL. robots.txt is
// retrieved once per host per run. When it cannot be retrieved even after a
// retry, fetching is allowed so an unreachable robots file does not silence
// a source; the decision is still logged for the diagnostics trail.
func (g *Gate) MayFetch(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}

	data := g.robotsFor(ctx, u)
	if data == nil {
		slog.Debug("robots.txt unavailable, allowing", "url", rawURL)
		return true
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}

	allowed := data.TestAgent(path, g.userAgent)
	slog.Debug("robots.txt decision", "url", rawURL, "allowed", allowed)
	return allowed
}

// AcquireSlot blocks until at least the configured delay has elapsed since
// the previous request to host. Slots are reserved under the lock, so
// concurrent callers for the same host queue up instead of racing.
func (g *Gate) AcquireSlot(ctx context.Context, host string) error {
	g.slotMu.Lock()
	now := g.now()
	slot := g.nextSlot[host]
	if slot.Before(now) {
		slot = now
	}
	g.nextSlot[host] = slot.Add(g.minDelay)
	g.slotMu.Unlock()

	if wait := slot.Sub(now); wait > 0 {
		return g.sleep(ctx, wait)
	}
	return nil
}

func (g *Gate) robotsFor(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	root := u.Scheme + "://" + u.Host

	g.robotsMu.Lock()
	defer g.robotsMu.Unlock()

	if data, ok := g.robots[root]; ok {
		return data
	}

	data := g.fetchRobots(ctx, root, u.Host)
	g.robots[root] = data
	return data
}

// fetchRobots retrieves and parses robots.txt with one retry on failure.
// Returns nil when the file stays unretrievable.
func (g *Gate) fetchRobots(ctx context.Context, root, host string) *robotstxt.RobotsData {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		data, err := g.fetchRobotsOnce(ctx, root, host)
		if err == nil {
			return data
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}

	slog.Warn("Failed to retrieve robots.txt, proceeding without rules", "host", root, "error", lastErr)
	return nil
}

// fetchRobotsOnce counts against the host's request budget like any other
// request, so the robots.txt fetch itself respects the per-host delay.
func (g *Gate) fetchRobotsOnce(ctx context.Context, root, host string) (*robotstxt.RobotsData, error) {
	if err := g.AcquireSlot(ctx, host); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, root+"/robots.txt", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// 4xx statuses parse as allow-all, 5xx as disallow-all.
	return robotstxt.FromStatusAndBytes(resp.StatusCode, body)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
