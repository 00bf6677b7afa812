package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Generator struct {
	outDir string
}

func NewGenerator(outDir string) *Generator {
	return &Generator{outDir: outDir}
}

// Run writes the markdown report and both CSVs for one run. Filenames embed
// the run date, so repeated runs on the same day overwrite each other.
func (g *Generator) Run(data Data) (*Paths, error) {
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	runDate := data.RunDate.Format("2006-01-02")
	paths := &Paths{
		Markdown:    filepath.Join(g.outDir, fmt.Sprintf("weekly_report_%s.md", runDate)),
		ArticlesCSV: filepath.Join(g.outDir, fmt.Sprintf("articles_%s.csv", runDate)),
		EntitiesCSV: filepath.Join(g.outDir, fmt.Sprintf("entities_%s.csv", runDate)),
	}

	if err := g.writeArticlesCSV(paths.ArticlesCSV, data); err != nil {
		return nil, err
	}
	if err := g.writeEntitiesCSV(paths.EntitiesCSV, data); err != nil {
		return nil, err
	}
	if err := g.writeMarkdown(paths.Markdown, data); err != nil {
		return nil, err
	}

	return paths, nil
}

func (g *Generator) writeArticlesCSV(path string, data Data) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create articles CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"source", "date", "title", "url", "excerpt", "auto_summary"}
	translated := len(data.Translations) > 0
	if translated {
		header = append(header, "title_"+data.TranslateLang)
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write articles CSV: %w", err)
	}

	for _, a := range data.Articles {
		row := []string{
			a.SourceName,
			formatDate(a.PublishedAt, time.RFC3339),
			a.Title,
			a.URL,
			a.Excerpt,
			strings.Join(a.Summary, " | "),
		}
		if translated {
			row = append(row, data.translate(a.Title))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write articles CSV: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func (g *Generator) writeEntitiesCSV(path string, data Data) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create entities CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"article_url", "entity", "category"}); err != nil {
		return fmt.Errorf("failed to write entities CSV: %w", err)
	}

	// Iterate articles, not the map, so row order is stable.
	for _, a := range data.Articles {
		for _, m := range data.EntitiesByArticle[a.URL] {
			if err := w.Write([]string{a.URL, m.Text, m.Label}); err != nil {
				return fmt.Errorf("failed to write entities CSV: %w", err)
			}
		}
	}

	w.Flush()
	return w.Error()
}

func formatDate(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}
