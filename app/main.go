package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okozlov/music-trends/app/article"
	"github.com/okozlov/music-trends/app/cfg"
	"github.com/okozlov/music-trends/app/collector"
	"github.com/okozlov/music-trends/app/database"
	"github.com/okozlov/music-trends/app/diagnostics"
	"github.com/okozlov/music-trends/app/fetch"
	"github.com/okozlov/music-trends/app/nlp"
	"github.com/okozlov/music-trends/app/report"
	"github.com/okozlov/music-trends/app/sources"
	"github.com/okozlov/music-trends/app/tasks"
	"github.com/okozlov/music-trends/app/translate"
	"github.com/okozlov/music-trends/app/trends"
)

func main() {
	c, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if c == nil {
		// Help was shown
		return
	}

	setupLogging(c.Verbose)
	slog.Info("Starting music-trends collector", "version", c.Version,
		"days", c.Days, "timezone", c.Timezone)

	srcs, err := sources.NewLoader(c.SourcesDir).LoadAll()
	if err != nil {
		slog.Error("Failed to load source definitions", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded sources", "count", len(srcs))

	now := time.Now().In(c.Location)
	window := article.NewWindow(now, c.Days, c.Location)
	slog.Info("Date window", "start", window.Start.Format(time.RFC3339),
		"end", window.End.Format(time.RFC3339))

	pageRepo, translationRepo, closeDB := openCaches(c)
	defer closeDB()

	httpClient := &http.Client{Timeout: c.HTTPTimeout()}
	gate := fetch.NewGate(httpClient, c.UserAgent, c.MinHostDelay())
	client := fetch.NewClient(httpClient, gate, pageRepo, c.UserAgent)
	diag := diagnostics.NewCollector()
	coll := collector.New(client, diag, window, c.MaxArticlesPerSource, c.Location)

	extractor := nlp.New(loadGazetteer(c))
	slog.Info("Entity extraction ready", "strategy", extractor.Name())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if c.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.RunTimeout)*time.Second)
		defer cancel()
	}

	results := tasks.NewResults()
	var batch []tasks.TaskInterface
	var sourceOrder []string
	for _, src := range srcs {
		diag.Register(src.Name)
		sourceOrder = append(sourceOrder, src.Name)
		batch = append(batch, tasks.NewCollectSourceTask(src, coll, results))
	}

	slog.Info("Collecting sources", "workers", c.WorkerCount, "sources", len(batch))
	pool := tasks.NewPool(c.WorkerCount, len(batch)+1)
	pool.Run(ctx, batch)
	if ctx.Err() != nil {
		slog.Warn("Collection cut short, reporting partial results", "reason", ctx.Err())
	}

	all := results.Flatten(sourceOrder)
	unique, duplicates := article.Dedupe(all)
	for _, dup := range duplicates {
		diag.Update(dup.SourceName, func(s *diagnostics.SourceStats) {
			s.Deduped++
		})
	}
	article.SortByDateDesc(unique)

	slog.Info("Articles after dedup", "total", len(unique), "duplicates", len(duplicates))
	if len(unique) == 0 {
		slog.Warn("No articles collected, writing an empty report with diagnostics")
	}

	entitiesByArticle := make(map[string][]nlp.Mention, len(unique))
	var allMentions []nlp.Mention
	for i := range unique {
		a := &unique[i]
		a.Summary = nlp.Summarize(a.Title, a.Excerpt)

		mentions := extractor.Extract(a.Title + ". " + a.Excerpt)
		for j := range mentions {
			mentions[j].ArticleURL = a.URL
		}
		entitiesByArticle[a.URL] = mentions
		allMentions = append(allMentions, mentions...)
	}

	entityTrends := trends.Aggregate(allMentions, unique)
	themes := trends.Themes(unique)

	data := report.Data{
		RunDate:           now,
		Window:            window,
		Articles:          unique,
		EntitiesByArticle: entitiesByArticle,
		Trends:            entityTrends,
		Themes:            themes,
		Diagnostics:       diag.Snapshots(),
		Totals:            diag.Total(),
		ExtractorName:     extractor.Name(),
		TopEntities:       c.TopEntities,
		TranslateLang:     c.TranslateLang,
	}
	data.Translations = runTranslation(c, httpClient, translationRepo, data)

	paths, err := report.NewGenerator(c.OutDir).Run(data)
	if err != nil {
		slog.Error("Failed to write report", "error", err)
		os.Exit(1)
	}

	slog.Info("Report written", "markdown", paths.Markdown,
		"articles_csv", paths.ArticlesCSV, "entities_csv", paths.EntitiesCSV)
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// openCaches opens the cache database and returns the page and translation
// repositories. Any failure degrades to running without the affected cache.
func openCaches(c *cfg.Cfg) (database.PageRepository, database.TranslationRepository, func()) {
	noop := func() {}

	if c.NoCache && c.TranslateURL == "" {
		return nil, nil, noop
	}

	db, err := database.Open(c.CacheDir)
	if err != nil {
		slog.Warn("Cache database unavailable, continuing without caches", "error", err)
		return nil, nil, noop
	}

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Warn("Cache migrations failed, continuing without caches", "error", err)
		db.Close()
		return nil, nil, noop
	}
	slog.Debug("Cache database ready", "schema_version", version, "dirty", dirty)

	var pageRepo database.PageRepository
	if !c.NoCache {
		pageRepo = database.NewPageRepository(db)
		if !c.KeepCache {
			if err := pageRepo.PurgePages(); err != nil {
				slog.Warn("Failed to clear cached pages from previous runs", "error", err)
			}
		}
	}

	return pageRepo, database.NewTranslationRepository(db), func() { db.Close() }
}

func loadGazetteer(c *cfg.Cfg) *nlp.Gazetteer {
	if c.GazetteerFile == "" {
		return nlp.NewGazetteer(nil)
	}
	gazetteer, err := nlp.LoadGazetteer(c.GazetteerFile)
	if err != nil {
		slog.Warn("Failed to load gazetteer file, using built-in names",
			"file", c.GazetteerFile, "error", err)
		return nlp.NewGazetteer(nil)
	}
	return gazetteer
}

// runTranslation is best-effort: it runs on its own context so a collection
// timeout never silences the bilingual report, and any failure simply
// leaves the report untranslated.
func runTranslation(c *cfg.Cfg, httpClient *http.Client,
	repo database.TranslationRepository, data report.Data) map[string]string {
	if c.TranslateURL == "" {
		return nil
	}

	var texts []string
	for _, a := range data.Articles {
		texts = append(texts, a.Title)
	}
	limit := c.TopEntities
	if limit < 0 || limit > len(data.Trends) {
		limit = len(data.Trends)
	}
	for _, entry := range data.Trends[:limit] {
		texts = append(texts, entry.Text)
	}
	texts = append(texts, report.ThemeLines(data.Themes)...)

	translator := translate.New(c.TranslateURL, c.TranslateLang, httpClient, repo)
	return translator.Run(context.Background(), texts)
}
