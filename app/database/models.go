package database

import "time"

// Page is a cached fetch result, keyed by normalized URL.
type Page struct {
	URL       string
	Status    int
	Body      []byte
	FetchedAt time.Time
}
