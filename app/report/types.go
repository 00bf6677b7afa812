package report

import (
	"time"

	"github.com/okozlov/music-trends/app/article"
	"github.com/okozlov/music-trends/app/diagnostics"
	"github.com/okozlov/music-trends/app/nlp"
	"github.com/okozlov/music-trends/app/trends"
)

// Data is everything one run hands to the report generator. The generator
// only reads it; the pipeline's structures stay untouched.
type Data struct {
	RunDate time.Time
	Window  article.Window

	Articles          []article.Article
	EntitiesByArticle map[string][]nlp.Mention // keyed by article URL

	Trends []trends.Entry
	Themes []trends.Theme

	Diagnostics []diagnostics.SourceSnapshot
	Totals      diagnostics.SourceStats

	ExtractorName string
	TopEntities   int

	// Best-effort translations keyed by the English source text. Empty when
	// the translation stage is disabled or failed.
	Translations  map[string]string
	TranslateLang string
}

// Paths lists the artifacts one run produced.
type Paths struct {
	Markdown    string
	ArticlesCSV string
	EntitiesCSV string
}

func (d Data) translate(text string) string {
	if d.Translations == nil {
		return ""
	}
	return d.Translations[text]
}
