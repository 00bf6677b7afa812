package article

// Dedupe collapses articles resolving to the same canonical URL, keeping the
// first occurrence. Callers pass articles in a fixed order (source list
// order, then within-source discovery order) so the surviving copy is
// deterministic even when sources were collected concurrently. The dropped
// duplicates are returned so diagnostics can attribute them to their source.
func Dedupe(articles []Article) (unique []Article, duplicates []Article) {
	seen := make(map[string]bool, len(articles))
	unique = make([]Article, 0, len(articles))

	for _, a := range articles {
		key := CanonicalURL(a.URL)
		if seen[key] {
			duplicates = append(duplicates, a)
			continue
		}
		seen[key] = true
		unique = append(unique, a)
	}

	return unique, duplicates
}
