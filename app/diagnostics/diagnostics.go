package diagnostics

import "sync"

// SourceStats holds the per-source counters accumulated during a run. The
// counters only feed reporting and never influence control flow.
type SourceStats struct {
	Discovered        int
	Attempted         int
	Fetched           int
	Cached            int
	KeptInRange       int
	DroppedOutOfRange int
	KeptMissingDate   int
	Failures          int
	RobotsBlocked     int
	ParseFailures     int
	Deduped           int
}

func (s SourceStats) Kept() int {
	return s.KeptInRange + s.KeptMissingDate
}

type SourceSnapshot struct {
	Name  string
	Stats SourceStats
}

// Collector accumulates counters for all sources of one run. It is shared
// across concurrent source tasks, so every access goes through the mutex.
type Collector struct {
	mu       sync.Mutex
	order    []string
	bySource map[string]*SourceStats
}

func NewCollector() *Collector {
	return &Collector{
		bySource: make(map[string]*SourceStats),
	}
}

// Register fixes the reporting order for a source. Sources are registered at
// run start in configuration order, before any concurrent task touches the
// collector.
func (c *Collector) Register(source string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statsLocked(source)
}

// Update applies a mutation to one source's counters under the lock.
func (c *Collector) Update(source string, fn func(*SourceStats)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.statsLocked(source))
}

// Snapshot returns a copy of one source's counters.
func (c *Collector) Snapshot(source string) SourceStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.statsLocked(source)
}

// Snapshots returns per-source copies in registration order.
func (c *Collector) Snapshots() []SourceSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]SourceSnapshot, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, SourceSnapshot{Name: name, Stats: *c.bySource[name]})
	}
	return out
}

// Total sums the counters across all sources.
func (c *Collector) Total() SourceStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total SourceStats
	for _, stats := range c.bySource {
		total.Discovered += stats.Discovered
		total.Attempted += stats.Attempted
		total.Fetched += stats.Fetched
		total.Cached += stats.Cached
		total.KeptInRange += stats.KeptInRange
		total.DroppedOutOfRange += stats.DroppedOutOfRange
		total.KeptMissingDate += stats.KeptMissingDate
		total.Failures += stats.Failures
		total.RobotsBlocked += stats.RobotsBlocked
		total.ParseFailures += stats.ParseFailures
		total.Deduped += stats.Deduped
	}
	return total
}

func (c *Collector) statsLocked(source string) *SourceStats {
	stats, ok := c.bySource[source]
	if !ok {
		stats = &SourceStats{}
		c.bySource[source] = stats
		c.order = append(c.order, source)
	}
	return stats
}
