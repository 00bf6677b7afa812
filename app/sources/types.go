package sources

type Mode string

const (
	// ModeRSSPrimary discovers through the feed first, falling back to the
	// HTML listing when the feed yields nothing.
	ModeRSSPrimary Mode = "rss_primary"
	// ModeHTMLPrimary discovers through the HTML listing first, with the
	// feed as fallback when one is configured.
	ModeHTMLPrimary Mode = "html_primary"
)

// Source describes one news source: where to discover candidate article
// URLs and which discovery path to try first. New sources are added as
// definition files, not by changing collection logic.
type Source struct {
	Name       string `yaml:"name"`
	Mode       Mode   `yaml:"mode"`
	ListingURL string `yaml:"listing_url"`
	FeedURL    string `yaml:"feed_url"`
	// LinkFilter keeps only candidate URLs containing this substring, e.g.
	// "/news/" for sources whose listing pages mix article and section links.
	LinkFilter string `yaml:"link_filter"`
}
