package article

import (
	"net/url"
	"regexp"
	"strings"
)

// Tracking parameters are dropped during canonicalization so the same
// article shared through different channels collapses to one identity.
var trackingParams = map[string]bool{
	"fbclid": true,
	"gclid":  true,
	"igshid": true,
	"mc_cid": true,
	"mc_eid": true,
	"ref":    true,
}

var multiSlash = regexp.MustCompile(`/{2,}`)

// CanonicalURL normalizes a URL into the identity key used for
// deduplication: scheme and host are case-folded, default ports and
// fragments are stripped, duplicate and trailing slashes are collapsed, and
// known tracking query parameters are removed. Unparseable input is returned
// unchanged so callers never lose an article over a malformed link.
func CanonicalURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	if (u.Scheme == "http" && strings.HasSuffix(u.Host, ":80")) ||
		(u.Scheme == "https" && strings.HasSuffix(u.Host, ":443")) {
		u.Host = u.Host[:strings.LastIndex(u.Host, ":")]
	}

	u.Path = multiSlash.ReplaceAllString(u.Path, "/")
	if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	query := u.Query()
	for key := range query {
		if trackingParams[key] || strings.HasPrefix(strings.ToLower(key), "utm_") {
			query.Del(key)
		}
	}
	u.RawQuery = query.Encode()

	return u.String()
}
