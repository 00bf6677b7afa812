package nlp

import "log/slog"

// New selects the extraction strategy once at startup: the statistical
// tagger when it initializes, otherwise the rule-based fallback. The
// degradation is logged a single time and holds for the whole run.
func New(gazetteer *Gazetteer) Extractor {
	model, err := NewModelExtractor(gazetteer)
	if err != nil {
		slog.Warn("Statistical tagger unavailable, using rule-based entity extraction", "error", err)
		return NewRuleExtractor(gazetteer)
	}

	slog.Debug("Entity extraction strategy selected", "strategy", model.Name())
	return model
}
