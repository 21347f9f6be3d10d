package feedparser

import "strings"

// firstNonEmpty returns the first non-empty (after trimming) string among
// vals, or "".
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// dedupStrings returns vals with duplicates removed, preserving the order
// of first occurrence. Comparison is case-sensitive: "Tech" and "tech" are
// kept as distinct categories.
func dedupStrings(vals []string) []string {
	seen := make(map[string]bool, len(vals))
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// splitComma splits s on commas, trims each piece, and drops empties.
func splitComma(s string) []string {
	return splitAndTrim(s, ",")
}

// splitWhitespace splits s on runs of whitespace, trims each piece, and
// drops empties.
func splitWhitespace(s string) []string {
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// isExplicitFlag coerces the many spellings feeds use for a boolean
// explicit-content flag (itunes:explicit, media:rating) into a bool.
func isExplicitFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "explicit":
		return true
	default:
		return false
	}
}
