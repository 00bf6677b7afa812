package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/okozlov/music-trends/app/trends"
)

func (g *Generator) writeMarkdown(path string, data Data) error {
	var b strings.Builder

	b.WriteString("# Weekly Music Industry News Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", data.RunDate.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Date window: %s to %s\n\n",
		data.Window.Start.Format("2006-01-02"), data.Window.End.Format("2006-01-02"))
	fmt.Fprintf(&b, "Entity extraction: %s\n", data.ExtractorName)

	g.writeArticlesSection(&b, data)
	g.writeEntitiesSection(&b, data)
	g.writeTopEntitiesSection(&b, data)
	g.writeThemesSection(&b, data)
	g.writeDiagnosticsSection(&b, data)
	g.writeComplianceSection(&b)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write markdown report: %w", err)
	}
	return nil
}

func (g *Generator) writeArticlesSection(b *strings.Builder, data Data) {
	b.WriteString("\n## Articles\n\n")
	if len(data.Articles) == 0 {
		b.WriteString("No articles collected in this window.\n")
		return
	}

	translated := len(data.Translations) > 0
	if translated {
		fmt.Fprintf(b, "| Source | Date | Title | Title (%s) | URL | Excerpt | Auto-summary |\n", data.TranslateLang)
		b.WriteString("|---|---|---|---|---|---|---|\n")
	} else {
		b.WriteString("| Source | Date | Title | URL | Excerpt | Auto-summary |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
	}

	for _, a := range data.Articles {
		summary := cell(strings.Join(a.Summary, "<br>"))
		if translated {
			fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s | %s |\n",
				cell(a.SourceName), formatDate(a.PublishedAt, "2006-01-02"), cell(a.Title),
				cell(data.translate(a.Title)), a.URL, cell(a.Excerpt), summary)
		} else {
			fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s |\n",
				cell(a.SourceName), formatDate(a.PublishedAt, "2006-01-02"), cell(a.Title),
				a.URL, cell(a.Excerpt), summary)
		}
	}
}

func (g *Generator) writeEntitiesSection(b *strings.Builder, data Data) {
	b.WriteString("\n## Entities by article\n\n")
	b.WriteString("| Article title | Source | Date | Entity | Category |\n")
	b.WriteString("|---|---|---|---|---|\n")

	for _, a := range data.Articles {
		for _, m := range data.EntitiesByArticle[a.URL] {
			fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
				cell(a.Title), cell(a.SourceName), formatDate(a.PublishedAt, "2006-01-02"),
				cell(m.Text), m.Label)
		}
	}
}

func (g *Generator) writeTopEntitiesSection(b *strings.Builder, data Data) {
	b.WriteString("\n## Top entities this week\n\n")

	limit := data.TopEntities
	if limit <= 0 || limit > len(data.Trends) {
		limit = len(data.Trends)
	}

	translated := len(data.Translations) > 0
	if translated {
		fmt.Fprintf(b, "| Rank | Entity | Entity (%s) | Category | Frequency | Evidence |\n", data.TranslateLang)
		b.WriteString("|---|---|---|---|---|---|\n")
	} else {
		b.WriteString("| Rank | Entity | Category | Frequency | Evidence |\n")
		b.WriteString("|---|---|---|---|---|\n")
	}

	for i, entry := range data.Trends[:limit] {
		var refs []string
		for _, ev := range entry.Evidence {
			refs = append(refs, evidenceRef(ev.Title, ev.SourceName, ev.PublishedAt))
		}
		if translated {
			fmt.Fprintf(b, "| %d | %s | %s | %s | %d | %s |\n",
				i+1, cell(entry.Text), cell(data.translate(entry.Text)), entry.Label,
				entry.Count, cell(strings.Join(refs, "; ")))
		} else {
			fmt.Fprintf(b, "| %d | %s | %s | %d | %s |\n",
				i+1, cell(entry.Text), entry.Label, entry.Count, cell(strings.Join(refs, "; ")))
		}
	}
}

func (g *Generator) writeThemesSection(b *strings.Builder, data Data) {
	b.WriteString("\n## Trend analysis\n\n")

	if len(data.Themes) == 0 {
		b.WriteString("- Insufficient evidence to detect recurring themes.\n")
		return
	}

	for _, line := range ThemeLines(data.Themes) {
		b.WriteString(line + "\n")
		if translated := data.translate(line); translated != "" {
			b.WriteString("  - " + translated + "\n")
		}
	}
}

// ThemeLines renders the trend-analysis bullet for each theme. The exact
// strings double as translation keys for the bilingual report.
func ThemeLines(themes []trends.Theme) []string {
	lines := make([]string, 0, len(themes))
	for _, theme := range themes {
		var refs []string
		for _, ev := range theme.Evidence {
			refs = append(refs, evidenceRef(ev.Title, ev.SourceName, ev.PublishedAt))
		}
		lines = append(lines, fmt.Sprintf("- Theme: **%s** appears across %d articles. Evidence: %s.",
			theme.Term, theme.Count, strings.Join(refs, "; ")))
	}
	return lines
}

func (g *Generator) writeDiagnosticsSection(b *strings.Builder, data Data) {
	b.WriteString("\n## Diagnostics\n\n")

	if data.Totals.Kept() == 0 {
		b.WriteString("**No articles found.** Both sources may be unreachable or outside the date window; see per-source counters below.\n\n")
	}

	b.WriteString("| Source | Discovered | Attempted | Fetched | Cached | Kept (in range) | Kept (no date) | Out of range | Duplicates | Failures | Robots blocked | Parse failures |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|---|---|---|---|\n")
	for _, snap := range data.Diagnostics {
		s := snap.Stats
		fmt.Fprintf(b, "| %s | %d | %d | %d | %d | %d | %d | %d | %d | %d | %d | %d |\n",
			cell(snap.Name), s.Discovered, s.Attempted, s.Fetched, s.Cached,
			s.KeptInRange, s.KeptMissingDate, s.DroppedOutOfRange, s.Deduped,
			s.Failures, s.RobotsBlocked, s.ParseFailures)
	}
	s := data.Totals
	fmt.Fprintf(b, "| **Total** | %d | %d | %d | %d | %d | %d | %d | %d | %d | %d | %d |\n",
		s.Discovered, s.Attempted, s.Fetched, s.Cached,
		s.KeptInRange, s.KeptMissingDate, s.DroppedOutOfRange, s.Deduped,
		s.Failures, s.RobotsBlocked, s.ParseFailures)
}

func (g *Generator) writeComplianceSection(b *strings.Builder) {
	b.WriteString("\n## Limitations & compliance note\n\n")
	b.WriteString("- This report uses only public pages and respects robots.txt checks before crawling feed/listing/article URLs.\n")
	b.WriteString("- No paywalls or login-protected areas are accessed.\n")
	b.WriteString("- Stored fields are limited to title, URL, date, short excerpt (<=300 chars), and generated summaries.\n")
	b.WriteString("- Trend analysis is keyword-based and may miss nuance; uncertain findings are marked as insufficient evidence.\n")
}

// cell strips characters that would break a markdown table row.
func cell(text string) string {
	text = strings.ReplaceAll(text, "|", " ")
	return strings.Join(strings.Fields(text), " ")
}

func evidenceRef(title, source string, publishedAt *time.Time) string {
	date := "date unknown"
	if publishedAt != nil {
		date = publishedAt.Format("2006-01-02")
	}
	return fmt.Sprintf("%s (%s, %s)", title, source, date)
}
