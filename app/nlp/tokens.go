package nlp

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`[A-Za-z][A-Za-z\-']+`)

// stopwords excludes glue words plus terms that dominate every music-trade
// headline without carrying a theme.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "of": true,
	"for": true, "to": true, "in": true, "on": true, "with": true, "by": true,
	"from": true, "at": true, "is": true, "are": true, "this": true, "that": true,
	"music": true, "news": true, "week": true, "said": true, "says": true,
	"has": true, "have": true, "will": true, "its": true, "new": true,
}

// Tokenize lowercases text and returns its significant words.
func Tokenize(text string) []string {
	var tokens []string
	for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if len(word) <= 2 || stopwords[word] {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}
