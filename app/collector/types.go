package collector

import "time"

// Candidate is a discovered article URL, possibly carrying metadata the
// discovery path already knows. Feed entries bring a title and date along,
// listing links bring only the URL.
type Candidate struct {
	URL         string
	Title       string
	PublishedAt *time.Time
}
