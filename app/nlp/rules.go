package nlp

import (
	"regexp"
	"strings"
)

// capitalizedSeq matches runs of up to five capitalized words, the
// candidate named entities of the rule-based path.
var capitalizedSeq = regexp.MustCompile(`\b([A-Z][A-Za-z&.'-]+(?:\s+[A-Z][A-Za-z&.'-]+){0,4})\b`)

// RuleExtractor is the deterministic fallback: capitalization heuristics
// plus the gazetteer. Same input always yields the same mentions in the
// same order.
type RuleExtractor struct {
	gazetteer *Gazetteer
}

func NewRuleExtractor(gazetteer *Gazetteer) *RuleExtractor {
	return &RuleExtractor{gazetteer: gazetteer}
}

func (e *RuleExtractor) Name() string { return "rule-based" }

func (e *RuleExtractor) Extract(text string) []Mention {
	var mentions []Mention

	for _, match := range capitalizedSeq.FindAllString(text, -1) {
		term := strings.TrimSpace(match)
		mentions = append(mentions, Mention{
			Text:  term,
			Label: mapLabel(e.gazetteer, term, ""),
		})
	}

	// Gazetteer names are recognized regardless of casing and reported in
	// their canonical lowercase form. Byte indexes into the case-folded
	// text must never slice the original: lowercasing can change rune
	// widths, shifting every index after such a rune.
	low := strings.ToLower(text)
	for _, term := range e.gazetteer.Terms() {
		if strings.Contains(low, term) {
			mentions = append(mentions, Mention{
				Text:  term,
				Label: LabelCompany,
			})
		}
	}

	return dedupeMentions(mentions)
}
