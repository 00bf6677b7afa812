package nlp

import (
	"strings"

	"golang.org/x/text/cases"
)

// Entity labels. The coarse categories of the report, not the raw tagger
// labels.
const (
	LabelCompany      = "Company"
	LabelArtistPerson = "Artist/Person"
	LabelOrganization = "Organization"
	LabelPlace        = "Place"
	LabelOther        = "Other"
)

// Mention is one entity occurrence in one article. Never mutated after
// extraction; ArticleURL is a lookup key, the mention does not own the
// article.
type Mention struct {
	Text       string
	Label      string
	ArticleURL string
}

// Extractor turns article text into entity mentions. Both strategies return
// the same shape so downstream aggregation is strategy-agnostic.
type Extractor interface {
	Extract(text string) []Mention
	Name() string
}

// FoldKey normalizes entity text for grouping: trimmed and unicode
// case-folded.
func FoldKey(text string) string {
	return cases.Fold().String(strings.TrimSpace(text))
}

// dedupeMentions keeps the first mention per folded surface form,
// preserving order.
func dedupeMentions(mentions []Mention) []Mention {
	seen := make(map[string]bool, len(mentions))
	out := make([]Mention, 0, len(mentions))
	for _, m := range mentions {
		key := FoldKey(m.Text)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}

// mapLabel folds a tagger label and the surface text into a report
// category. Gazetteer hits and industry suffixes win over the tagger label
// so labels, publishers and streaming services group as companies.
func mapLabel(gazetteer *Gazetteer, text, taggerLabel string) string {
	low := strings.ToLower(strings.TrimSpace(text))
	if gazetteer.Contains(low) {
		return LabelCompany
	}
	for _, hint := range []string{"music", "records", "group", "media", "entertainment"} {
		if strings.Contains(low, hint) {
			return LabelCompany
		}
	}

	switch taggerLabel {
	case "PERSON":
		return LabelArtistPerson
	case "ORG":
		return LabelOrganization
	case "GPE", "LOC":
		return LabelPlace
	default:
		return LabelOther
	}
}
