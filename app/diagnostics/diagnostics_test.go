package diagnostics

import (
	"sync"
	"testing"
)

func TestCollectorUpdate(t *testing.T) {
	c := NewCollector()
	c.Register("Music Week")

	c.Update("Music Week", func(s *SourceStats) { s.Discovered += 10 })
	c.Update("Music Week", func(s *SourceStats) { s.KeptInRange++ })
	c.Update("Music Week", func(s *SourceStats) { s.KeptMissingDate++ })

	stats := c.Snapshot("Music Week")
	if stats.Discovered != 10 {
		t.Errorf("Expected 10 discovered, got %d", stats.Discovered)
	}
	if stats.Kept() != 2 {
		t.Errorf("Expected 2 kept, got %d", stats.Kept())
	}
}

func TestCollectorSnapshotOrder(t *testing.T) {
	c := NewCollector()
	c.Register("Music Week")
	c.Register("Music Business Worldwide")

	c.Update("Music Business Worldwide", func(s *SourceStats) { s.Fetched = 3 })

	snapshots := c.Snapshots()
	if len(snapshots) != 2 {
		t.Fatalf("Expected 2 snapshots, got %d", len(snapshots))
	}
	if snapshots[0].Name != "Music Week" {
		t.Errorf("Expected registration order preserved, got %s first", snapshots[0].Name)
	}
	if snapshots[1].Stats.Fetched != 3 {
		t.Errorf("Expected 3 fetched for second source, got %d", snapshots[1].Stats.Fetched)
	}
}

func TestCollectorTotal(t *testing.T) {
	c := NewCollector()
	c.Update("a", func(s *SourceStats) { s.Failures = 2; s.RobotsBlocked = 1 })
	c.Update("b", func(s *SourceStats) { s.Failures = 3; s.Deduped = 4 })

	total := c.Total()
	if total.Failures != 5 {
		t.Errorf("Expected 5 total failures, got %d", total.Failures)
	}
	if total.RobotsBlocked != 1 {
		t.Errorf("Expected 1 robots block, got %d", total.RobotsBlocked)
	}
	if total.Deduped != 4 {
		t.Errorf("Expected 4 deduped, got %d", total.Deduped)
	}
}

func TestCollectorConcurrentUpdates(t *testing.T) {
	c := NewCollector()
	c.Register("concurrent")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Update("concurrent", func(s *SourceStats) { s.Attempted++ })
		}()
	}
	wg.Wait()

	if got := c.Snapshot("concurrent").Attempted; got != 50 {
		t.Errorf("Expected 50 attempted, got %d", got)
	}
}
