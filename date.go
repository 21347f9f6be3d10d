package feedparser

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// parseDate coerces a feed's free-form date string into a time.Time. Feed
// dates in the wild use RFC822, RFC1123, RFC3339, and a long tail of
// near-misses (two-digit years, missing leading zeros, odd timezone
// abbreviations); dateparse.ParseAny absorbs that variance instead of
// hand-maintaining a format list, a pattern the retrieval pack's actual
// feed-reader projects all depend on the same library for.
//
// A date that fails to parse yields the zero time.Time and is not treated
// as a parse error — feeds routinely contain unparseable or missing dates,
// and a date field is documented as nullable.
func parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
