package feedparser

import "strings"

// NamespaceRegistry maps known XML namespace URIs onto a canonical short
// prefix, independent of whatever prefix a given document happens to
// declare. It is the single point that decides dialect identity: a feed
// that binds "a:" to the Atom namespace is recognized exactly as one that
// leaves Atom as the default namespace.
type NamespaceRegistry struct {
	// byURI maps a lower-cased, trailing-slash-trimmed URI to its
	// canonical prefix.
	byURI map[string]string
}

// canonicalNamespaces lists every namespace URI this module recognizes,
// together with its canonical short prefix. Multiple URIs may map to the
// same prefix (historical variants of the same namespace).
var canonicalNamespaces = map[string]string{
	"http://www.w3.org/2005/atom":                           "atom",
	"http://purl.org/atom/ns#":                               "atom",
	"http://www.w3.org/1999/02/22-rdf-syntax-ns#":            "rdf",
	"http://purl.org/rss/1.0/":                               "rdf",
	"http://purl.org/rss/1.0/modules/content/":                "content",
	"http://purl.org/dc/elements/1.1/":                        "dc",
	"http://purl.org/dc/terms/":                                "dcterms",
	"http://www.itunes.com/dtds/podcast-1.0.dtd":               "itunes",
	"http://search.yahoo.com/mrss/":                            "media",
	"http://search.yahoo.com/mrss":                             "media",
	"http://backend.userland.com/creativeCommonsRssModule":     "creativecommons",
	"http://creativecommons.org/ns#":                           "cc",
	"http://webns.net/mvcb/":                                   "admin",
	"http://rssnamespace.org/feedburner/ext/1.0":               "feedburner",
	"http://rssnamespace.org/feedburner/ext/1.0/":              "feedburner",
	"http://www.pheedo.com/namespace/pheedo":                   "pheedo",
	"http://www.w3.org/xml/1998/namespace":                     "xml",
	"http://www.georss.org/georss":                             "georss",
	"http://www.w3.org/2003/01/geo/wgs84_pos#":                 "geo",
	"http://purl.org/rss/1.0/modules/slash/":                   "slash",
	"http://wellformedweb.org/commentapi/":                     "wfw",
	"http://purl.org/syndication/thread/1.0":                   "thr",
	"http://www.w3.org/1999/xhtml":                             "xhtml",
}

// NewNamespaceRegistry builds the registry from canonicalNamespaces.
func NewNamespaceRegistry() *NamespaceRegistry {
	r := &NamespaceRegistry{byURI: map[string]string{}}
	for uri, prefix := range canonicalNamespaces {
		r.byURI[normalizeURI(uri)] = prefix
	}
	return r
}

func normalizeURI(uri string) string {
	uri = strings.ToLower(strings.TrimSpace(uri))
	return strings.TrimSuffix(uri, "/")
}

// CanonicalPrefix returns the canonical prefix registered for uri, and
// whether it was found. Lookups are case-insensitive and tolerant of a
// trailing slash.
func (r *NamespaceRegistry) CanonicalPrefix(uri string) (string, bool) {
	if uri == "" {
		return "", false
	}
	p, ok := r.byURI[normalizeURI(uri)]
	return p, ok
}

// BelongsTo reports whether uri is one of the registered URIs for prefix.
func (r *NamespaceRegistry) BelongsTo(uri, prefix string) bool {
	p, ok := r.CanonicalPrefix(uri)
	return ok && p == prefix
}

// IsAtom reports whether uri is a registered Atom namespace.
func (r *NamespaceRegistry) IsAtom(uri string) bool { return r.BelongsTo(uri, "atom") }

// IsRDF reports whether uri is a registered RDF namespace.
func (r *NamespaceRegistry) IsRDF(uri string) bool { return r.BelongsTo(uri, "rdf") }
