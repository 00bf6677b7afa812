package sources

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Defaults returns the built-in source set, used when no definitions
// directory exists. Order matters: it fixes the deterministic processing
// order for deduplication.
func Defaults() []Source {
	return []Source{
		{
			Name:       "Music Week",
			Mode:       ModeHTMLPrimary,
			ListingURL: "https://www.musicweek.com/news",
			LinkFilter: "/news/",
		},
		{
			Name:       "Music Business Worldwide",
			Mode:       ModeRSSPrimary,
			ListingURL: "https://www.musicbusinessworldwide.com/category/news/",
			FeedURL:    "https://www.musicbusinessworldwide.com/feed/",
		},
	}
}

type Loader struct {
	dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// LoadAll reads every YAML source definition from the directory, sorted by
// filename for a stable source order. A missing directory is not an error:
// the built-in sources are used instead.
func (l *Loader) LoadAll() ([]Source, error) {
	if _, err := os.Stat(l.dir); os.IsNotExist(err) {
		slog.Debug("Sources directory not found, using built-in sources", "dir", l.dir)
		return Defaults(), nil
	}

	files, err := filepath.Glob(filepath.Join(l.dir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}
	yamlFiles, err := filepath.Glob(filepath.Join(l.dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YAML files: %w", err)
	}
	files = append(files, yamlFiles...)
	sort.Strings(files)

	if len(files) == 0 {
		slog.Debug("No source definitions found, using built-in sources", "dir", l.dir)
		return Defaults(), nil
	}

	out := make([]Source, 0, len(files))
	for _, file := range files {
		src, err := l.loadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}
		if err := validate(src); err != nil {
			return nil, fmt.Errorf("invalid source %s: %w", file, err)
		}
		slog.Debug("Source definition loaded", "source", src.Name, "mode", string(src.Mode))
		out = append(out, src)
	}

	return out, nil
}

func (l *Loader) loadFile(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("failed to read file: %w", err)
	}

	var src Source
	if err := yaml.Unmarshal(data, &src); err != nil {
		return Source{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	setDefaults(&src)
	return src, nil
}

func setDefaults(src *Source) {
	if src.Mode == "" {
		if src.FeedURL != "" {
			src.Mode = ModeRSSPrimary
		} else {
			src.Mode = ModeHTMLPrimary
		}
	}
}

func validate(src Source) error {
	if src.Name == "" {
		return fmt.Errorf("source name is required")
	}
	if src.ListingURL == "" && src.FeedURL == "" {
		return fmt.Errorf("source needs a listing_url or a feed_url")
	}
	if src.Mode != ModeRSSPrimary && src.Mode != ModeHTMLPrimary {
		return fmt.Errorf("unknown mode: %s", src.Mode)
	}
	if src.Mode == ModeRSSPrimary && src.FeedURL == "" {
		return fmt.Errorf("rss_primary source needs a feed_url")
	}
	return nil
}
