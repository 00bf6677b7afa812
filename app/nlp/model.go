package nlp

import (
	"fmt"

	prose "github.com/jdkato/prose/v2"
)

// ModelExtractor runs the pretrained statistical tagger. Construction
// probes the model once; when that fails the run degrades permanently to
// the rule-based extractor, there is no per-article retry of the model
// path.
type ModelExtractor struct {
	gazetteer *Gazetteer
}

func NewModelExtractor(gazetteer *Gazetteer) (*ModelExtractor, error) {
	// Probe the tagger so an unusable model surfaces at startup rather than
	// on the first article.
	doc, err := prose.NewDocument("Spotify signed a deal in London.")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tagger: %w", err)
	}
	_ = doc.Entities()

	return &ModelExtractor{gazetteer: gazetteer}, nil
}

func (e *ModelExtractor) Name() string { return "model" }

func (e *ModelExtractor) Extract(text string) []Mention {
	doc, err := prose.NewDocument(text)
	if err != nil {
		// A single undigestible text degrades to the heuristics for that
		// text only; the model stays selected.
		return NewRuleExtractor(e.gazetteer).Extract(text)
	}

	var mentions []Mention
	for _, ent := range doc.Entities() {
		mentions = append(mentions, Mention{
			Text:  ent.Text,
			Label: mapLabel(e.gazetteer, ent.Text, ent.Label),
		})
	}

	return dedupeMentions(mentions)
}
