package article

import (
	"testing"
	"time"
)

func TestWindowClassify(t *testing.T) {
	loc, err := time.LoadLocation("Europe/London")
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, loc)
	window := NewWindow(now, 7, loc)

	tests := []struct {
		name     string
		offset   time.Duration
		expected Classification
	}{
		{
			name:     "published now",
			offset:   0,
			expected: InRange,
		},
		{
			name:     "six days ago",
			offset:   -6 * 24 * time.Hour,
			expected: InRange,
		},
		{
			name:     "exactly seven days ago",
			offset:   -7 * 24 * time.Hour,
			expected: InRange,
		},
		{
			name:     "seven days and one second ago",
			offset:   -(7*24*time.Hour + time.Second),
			expected: OutOfRange,
		},
		{
			name:     "one hour in the future",
			offset:   time.Hour,
			expected: OutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			published := now.Add(tt.offset)
			got := window.Classify(&published)
			if got != tt.expected {
				t.Errorf("Classify(%v) = %s, expected %s", published, got, tt.expected)
			}
		})
	}
}

func TestWindowClassifyMissingDate(t *testing.T) {
	window := NewWindow(time.Now(), 7, time.UTC)

	// An absent date must never classify as out_of_range.
	got := window.Classify(nil)
	if got != UndatedKept {
		t.Errorf("Classify(nil) = %s, expected %s", got, UndatedKept)
	}
}
