package cfg

import "time"

type Cfg struct {
	// Run parameters
	Days                 int
	MaxArticlesPerSource int
	OutDir               string

	// Fetching
	SourcesDir   string
	CacheDir     string
	NoCache      bool
	KeepCache    bool
	RequestDelay int // milliseconds between requests to the same host
	Timeout      int // seconds per HTTP request
	WorkerCount  int
	RunTimeout   int // seconds for the whole collection phase, 0 disables

	// Extraction
	GazetteerFile string
	TopEntities   int

	// Translation (optional, disabled when URL is empty)
	TranslateURL  string
	TranslateLang string

	// Application metadata
	UserAgent string
	Timezone  string
	Verbose   bool
	Version   string

	// Resolved from Timezone at load time
	Location *time.Location
}
