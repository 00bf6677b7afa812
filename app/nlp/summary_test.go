package nlp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSummarizeReturnsBullets(t *testing.T) {
	title := "Streaming revenue grows again"
	excerpt := "Streaming revenue grew for the ninth consecutive year according to the report. " +
		"Vinyl sales also continued their resurgence across all major markets. " +
		"Industry executives credited catalogue acquisitions for the growth."

	bullets := Summarize(title, excerpt)

	if len(bullets) == 0 {
		t.Fatal("Expected at least one bullet")
	}
	if len(bullets) > maxSummaryBullets {
		t.Errorf("Expected at most %d bullets, got %d", maxSummaryBullets, len(bullets))
	}
	for _, b := range bullets {
		if len(b) > maxBulletLength {
			t.Errorf("Bullet exceeds %d chars: %q", maxBulletLength, b)
		}
	}
}

func TestSummarizeBulletCapMultibyte(t *testing.T) {
	sentence := strings.Repeat("künstler streaming katalog ", 20)
	bullets := Summarize("Übernahme announced", sentence)

	if len(bullets) == 0 {
		t.Fatal("Expected at least one bullet")
	}
	for _, b := range bullets {
		if !utf8.ValidString(b) {
			t.Errorf("Bullet is not valid UTF-8: %q", b)
		}
		if n := utf8.RuneCountInString(b); n > maxBulletLength {
			t.Errorf("Bullet rune count %d exceeds %d", n, maxBulletLength)
		}
	}
}

func TestSummarizeShortText(t *testing.T) {
	bullets := Summarize("Short title", "")
	if len(bullets) == 0 {
		t.Fatal("Expected a fallback bullet for short text")
	}
}

func TestTokenizeFiltersStopwords(t *testing.T) {
	tokens := Tokenize("The Music Week said that streaming is the future of revenue")

	for _, token := range tokens {
		if stopwords[token] {
			t.Errorf("Stopword %q leaked into tokens", token)
		}
		if len(token) <= 2 {
			t.Errorf("Short token %q leaked into tokens", token)
		}
	}

	joined := strings.Join(tokens, " ")
	if !strings.Contains(joined, "streaming") || !strings.Contains(joined, "revenue") {
		t.Errorf("Expected significant words kept, got %v", tokens)
	}
}

func TestLoadGazetteerFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gazetteer.yml")
	content := "- Secretly Group\n- Concord\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	g, err := LoadGazetteer(path)
	if err != nil {
		t.Fatal(err)
	}
	if !g.Contains("secretly group") || !g.Contains("concord") {
		t.Error("Expected file terms loaded")
	}
}

func TestLoadGazetteerEmptyPath(t *testing.T) {
	g, err := LoadGazetteer("")
	if err != nil {
		t.Fatal(err)
	}
	if !g.Contains("spotify") {
		t.Error("Expected defaults with empty path")
	}
}

func TestLoadGazetteerMissingFile(t *testing.T) {
	if _, err := LoadGazetteer(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("Expected error for missing gazetteer file")
	}
}
