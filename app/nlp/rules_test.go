package nlp

import (
	"reflect"
	"testing"
	"unicode/utf8"
)

func TestRuleExtractorGazetteerEntity(t *testing.T) {
	extractor := NewRuleExtractor(NewGazetteer(nil))

	mentions := extractor.Extract("Spotify has announced a new royalty model for independent artists.")

	if len(mentions) == 0 {
		t.Fatal("Expected at least one mention for text containing a gazetteer entity")
	}

	found := false
	for _, m := range mentions {
		if FoldKey(m.Text) == "spotify" {
			found = true
			if m.Label != LabelCompany {
				t.Errorf("Expected Spotify labelled %s, got %s", LabelCompany, m.Label)
			}
		}
	}
	if !found {
		t.Errorf("Expected a Spotify mention, got %v", mentions)
	}
}

func TestRuleExtractorLowercaseGazetteerEntity(t *testing.T) {
	extractor := NewRuleExtractor(NewGazetteer(nil))

	mentions := extractor.Extract("the deal with ticketmaster raised concerns")

	found := false
	for _, m := range mentions {
		if FoldKey(m.Text) == "ticketmaster" && m.Label == LabelCompany {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected lowercase gazetteer name recognized, got %v", mentions)
	}
}

func TestRuleExtractorCapitalizedSequences(t *testing.T) {
	extractor := NewRuleExtractor(NewGazetteer(nil))

	mentions := extractor.Extract("Taylor Swift signed with Republic Records last year.")

	var texts []string
	for _, m := range mentions {
		texts = append(texts, m.Text)
	}

	wantSome := []string{"Taylor Swift", "Republic Records"}
	for _, want := range wantSome {
		found := false
		for _, got := range texts {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected mention %q, got %v", want, texts)
		}
	}
}

func TestRuleExtractorDeterministic(t *testing.T) {
	extractor := NewRuleExtractor(NewGazetteer(nil))
	text := "Universal Music Group and Warner Music reported growth. Spotify disagreed."

	first := extractor.Extract(text)
	second := extractor.Extract(text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Rule-based extraction must be reproducible: %v vs %v", first, second)
	}
}

func TestRuleExtractorDedupesWithinText(t *testing.T) {
	extractor := NewRuleExtractor(NewGazetteer(nil))

	mentions := extractor.Extract("Spotify grew. Spotify also expanded. SPOTIFY everywhere.")

	count := 0
	for _, m := range mentions {
		if FoldKey(m.Text) == "spotify" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected one deduplicated Spotify mention, got %d", count)
	}
}

func TestRuleExtractorWidthChangingRunes(t *testing.T) {
	extractor := NewRuleExtractor(NewGazetteer(nil))

	// Lowercasing U+023A widens it from 2 to 3 bytes and U+0130 shrinks
	// from 2 to 1, shifting byte offsets for everything after them.
	for _, text := range []string{
		"Ⱥ spotify",
		"İngrooves signed spotify",
		"a deal between TȺ and spotify in Türkiye",
	} {
		mentions := extractor.Extract(text)

		found := false
		for _, m := range mentions {
			if !utf8.ValidString(m.Text) {
				t.Errorf("Extract(%q) produced invalid UTF-8 mention %q", text, m.Text)
			}
			if m.Text == "spotify" && m.Label == LabelCompany {
				found = true
			}
		}
		if !found {
			t.Errorf("Extract(%q) missed the gazetteer entity, got %v", text, mentions)
		}
	}
}

func TestMapLabelIndustrySuffix(t *testing.T) {
	g := NewGazetteer(nil)

	tests := []struct {
		text        string
		taggerLabel string
		expected    string
	}{
		{"Concord Records", "", LabelCompany},
		{"Paradigm Entertainment", "ORG", LabelCompany},
		{"Ed Sheeran", "PERSON", LabelArtistPerson},
		{"IFPI", "ORG", LabelOrganization},
		{"London", "GPE", LabelPlace},
		{"Something", "", LabelOther},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := mapLabel(g, tt.text, tt.taggerLabel); got != tt.expected {
				t.Errorf("mapLabel(%q, %q) = %s, expected %s", tt.text, tt.taggerLabel, got, tt.expected)
			}
		})
	}
}

func TestGazetteerExtension(t *testing.T) {
	g := NewGazetteer([]string{"Secretly Group"})

	if !g.Contains("secretly group") {
		t.Error("Expected extended gazetteer to contain the extra term")
	}
	if !g.Contains("spotify") {
		t.Error("Expected defaults to survive extension")
	}
}
