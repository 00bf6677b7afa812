package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Run parameters
	Days                 int    `long:"days" env:"DAYS" default:"7" description:"Collect articles published within the last N days"`
	MaxArticlesPerSource int    `long:"max-articles-per-source" env:"MAX_ARTICLES_PER_SOURCE" default:"80" description:"Stop discovery for a source once this many articles were kept"`
	OutDir               string `long:"outdir" env:"OUT_DIR" default:"output" description:"Directory for the markdown report and CSV files"`

	// Fetching
	SourcesDir   string `long:"sources-dir" env:"SOURCES_DIR" default:"./sources" description:"Directory containing source definition files (built-in sources used when empty)"`
	CacheDir     string `long:"cache-dir" env:"CACHE_DIR" default:"cache" description:"Directory for the fetch and translation caches"`
	NoCache      bool   `long:"no-cache" env:"NO_CACHE" description:"Disable the fetch cache, every page is fetched from the network"`
	KeepCache    bool   `long:"keep-cache" env:"KEEP_CACHE" description:"Keep cached pages from previous runs instead of clearing them at startup"`
	RequestDelay int    `long:"request-delay" env:"REQUEST_DELAY" default:"1000" description:"Minimum delay between requests to the same host, milliseconds"`
	Timeout      int    `long:"timeout" env:"TIMEOUT" default:"25" description:"HTTP request timeout in seconds"`
	WorkerCount  int    `long:"worker-count" env:"WORKER_COUNT" default:"4" description:"Number of workers collecting sources concurrently"`
	RunTimeout   int    `long:"run-timeout" env:"RUN_TIMEOUT" default:"0" description:"Overall collection timeout in seconds, 0 disables (partial results are reported on timeout)"`

	// Extraction
	GazetteerFile string `long:"gazetteer" env:"GAZETTEER_FILE" description:"YAML file with additional known entity names for the rule-based extractor"`
	TopEntities   int    `long:"top-entities" env:"TOP_ENTITIES" default:"50" description:"Number of entities listed in the trend table"`

	// Translation
	TranslateURL  string `long:"translate-url" env:"TRANSLATE_URL" description:"Translation endpoint (LibreTranslate compatible); empty disables translation"`
	TranslateLang string `long:"translate-lang" env:"TRANSLATE_LANG" default:"zh" description:"Target language code for the bilingual report"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"MusicTrendsBot/1.0 (+respectful-scraping)" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"Europe/London" description:"Reference timezone for the date window and report timestamps"`
	Verbose   bool   `long:"verbose" short:"v" env:"VERBOSE" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Days:                 raw.Days,
		MaxArticlesPerSource: raw.MaxArticlesPerSource,
		OutDir:               raw.OutDir,
		SourcesDir:           raw.SourcesDir,
		CacheDir:             raw.CacheDir,
		NoCache:              raw.NoCache,
		KeepCache:            raw.KeepCache,
		RequestDelay:         raw.RequestDelay,
		Timeout:              raw.Timeout,
		WorkerCount:          raw.WorkerCount,
		RunTimeout:           raw.RunTimeout,
		GazetteerFile:        raw.GazetteerFile,
		TopEntities:          raw.TopEntities,
		TranslateURL:         raw.TranslateURL,
		TranslateLang:        raw.TranslateLang,
		UserAgent:            raw.UserAgent,
		Timezone:             raw.Timezone,
		Verbose:              raw.Verbose,
		Version:              GetVersion(),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// validate rejects parameters the pipeline cannot recover from. Everything
// else degrades at the component boundary instead of failing the run.
func (c *Cfg) validate() error {
	if c.Days < 1 {
		return fmt.Errorf("days must be at least 1, got %d", c.Days)
	}
	if c.MaxArticlesPerSource < 1 {
		return fmt.Errorf("max-articles-per-source must be at least 1, got %d", c.MaxArticlesPerSource)
	}
	if c.RequestDelay < 0 {
		return fmt.Errorf("request-delay must be non-negative, got %d", c.RequestDelay)
	}
	if c.WorkerCount < 1 {
		return fmt.Errorf("worker-count must be at least 1, got %d", c.WorkerCount)
	}
	return nil
}

func (c *Cfg) MinHostDelay() time.Duration {
	return time.Duration(c.RequestDelay) * time.Millisecond
}

func (c *Cfg) HTTPTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}
