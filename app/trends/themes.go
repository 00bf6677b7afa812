package trends

import (
	"sort"
	"strings"

	"github.com/okozlov/music-trends/app/article"
	"github.com/okozlov/music-trends/app/nlp"
)

const (
	maxThemes        = 8
	themeCandidates  = 20
	minThemeArticles = 2
)

// Theme is a recurring keyword across articles, with supporting evidence.
type Theme struct {
	Term     string
	Count    int // number of articles mentioning the term
	Evidence []Evidence
}

// Themes finds terms that recur across at least two articles, strongest
// first. Candidate terms are the most frequent tokens over titles, excerpts
// and summaries; frequency ties order alphabetically for determinism.
func Themes(articles []article.Article) []Theme {
	if len(articles) == 0 {
		return nil
	}

	// A term matches an article only as a whole token: "art" must not
	// count articles that merely say "artist".
	freq := make(map[string]int)
	tokenSets := make([]map[string]bool, len(articles))
	for i, a := range articles {
		text := a.Title + ". " + a.Excerpt + ". " + strings.Join(a.Summary, " ")
		tokenSets[i] = make(map[string]bool)
		for _, token := range nlp.Tokenize(text) {
			freq[token]++
			tokenSets[i][token] = true
		}
	}

	candidates := make([]string, 0, len(freq))
	for term := range freq {
		candidates = append(candidates, term)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if freq[candidates[i]] != freq[candidates[j]] {
			return freq[candidates[i]] > freq[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})
	if len(candidates) > themeCandidates {
		candidates = candidates[:themeCandidates]
	}

	var themes []Theme
	for _, term := range candidates {
		if len(themes) >= maxThemes {
			break
		}

		var matched []article.Article
		for i, a := range articles {
			if tokenSets[i][term] {
				matched = append(matched, a)
			}
		}
		if len(matched) < minThemeArticles {
			continue
		}

		theme := Theme{Term: term, Count: len(matched)}
		for _, a := range matched {
			if len(theme.Evidence) >= EvidenceLimit {
				break
			}
			theme.Evidence = append(theme.Evidence, Evidence{
				Title:       a.Title,
				SourceName:  a.SourceName,
				PublishedAt: a.PublishedAt,
			})
		}
		themes = append(themes, theme)
	}

	return themes
}
