package article

import (
	"strings"
	"time"
)

// SiteOrigin is the fixed origin used to materialize site-relative links.
const SiteOrigin = "https://www.reuters.com"

// DisplayTimeLayout is the human-readable form stored in the formatted_time
// column, e.g. "June 05, 2023 @ 09:41 AM".
const DisplayTimeLayout = "January 02, 2006 @ 03:04 PM"

// Article is a single harvested news record. Instances are created by the
// extractor, appended once to the store and never mutated.
type Article struct {
	Timestamp time.Time
	Title     string
	URL       string
	Summary   string
}

// ResolveURL materializes a site-relative href against SiteOrigin.
// Absolute URLs pass through unchanged.
func ResolveURL(href string) string {
	if strings.HasPrefix(href, "/") {
		return SiteOrigin + href
	}
	return href
}
