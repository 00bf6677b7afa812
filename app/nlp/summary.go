package nlp

import (
	"regexp"
	"sort"
	"strings"
)

const (
	maxSummaryBullets = 3
	maxBulletLength   = 220
	minSentenceLength = 35
)

var sentenceSplit = regexp.MustCompile(`[.!?]\s+`)

// Summarize produces up to three extractive bullets from the article's
// title and excerpt, picking the sentences whose words are most frequent in
// the combined text. Deterministic: ties keep original sentence order.
func Summarize(title, excerpt string) []string {
	text := strings.TrimSpace(title + ". " + excerpt)

	var sentences []string
	for _, s := range sentenceSplit.Split(text, -1) {
		s = strings.TrimSpace(s)
		if len(s) > minSentenceLength {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) == 0 {
		sentences = []string{text}
	}

	freq := make(map[string]int)
	for _, token := range Tokenize(text) {
		freq[token]++
	}

	type scored struct {
		score    float64
		sentence string
	}
	var ranked []scored
	for _, sentence := range sentences {
		tokens := Tokenize(sentence)
		if len(tokens) == 0 {
			continue
		}
		sum := 0
		for _, token := range tokens {
			sum += freq[token]
		}
		ranked = append(ranked, scored{
			score:    float64(sum) / float64(len(tokens)),
			sentence: sentence,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	bullets := make([]string, 0, maxSummaryBullets)
	for _, r := range ranked {
		if len(bullets) >= maxSummaryBullets {
			break
		}
		bullet := r.sentence
		if runes := []rune(bullet); len(runes) > maxBulletLength {
			bullet = string(runes[:maxBulletLength])
		}
		bullets = append(bullets, bullet)
	}
	return bullets
}
