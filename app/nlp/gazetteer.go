package nlp

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultGazetteer is the built-in list of known music-industry
// organizations. An external YAML file can extend it.
var defaultGazetteer = []string{
	"universal music group",
	"sony music",
	"warner music",
	"warner music group",
	"bmg",
	"believe",
	"hipgnosis",
	"spotify",
	"apple music",
	"amazon music",
	"youtube music",
	"tidal",
	"deezer",
	"live nation",
	"ticketmaster",
	"merlin",
	"prs for music",
	"ascap",
	"bmi",
}

// Gazetteer is the curated set of known entity names used by the rule-based
// extractor, both to recognize names regardless of casing and to label them.
type Gazetteer struct {
	terms map[string]bool
	list  []string
}

func NewGazetteer(extra []string) *Gazetteer {
	g := &Gazetteer{terms: make(map[string]bool)}
	for _, term := range defaultGazetteer {
		g.add(term)
	}
	for _, term := range extra {
		g.add(term)
	}
	return g
}

// LoadGazetteer builds a gazetteer from the defaults plus an optional YAML
// file holding a plain list of names. An empty path loads the defaults only.
func LoadGazetteer(path string) (*Gazetteer, error) {
	if path == "" {
		return NewGazetteer(nil), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gazetteer file: %w", err)
	}

	var extra []string
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("failed to parse gazetteer YAML: %w", err)
	}

	return NewGazetteer(extra), nil
}

func (g *Gazetteer) add(term string) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || g.terms[term] {
		return
	}
	g.terms[term] = true
	g.list = append(g.list, term)
}

// Contains reports whether the lowercased term is a known name.
func (g *Gazetteer) Contains(lowTerm string) bool {
	return g.terms[lowTerm]
}

// Terms returns the known names in insertion order.
func (g *Gazetteer) Terms() []string {
	return g.list
}
