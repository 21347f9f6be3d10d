package feedparser

// Dialect is the sum type for the three syndication formats this module
// understands.
type Dialect string

const (
	DialectRSS  Dialect = "rss"
	DialectRDF  Dialect = "rdf"
	DialectAtom Dialect = "atom"
)

// detectDialect runs at the first root open-tag and classifies it by root
// element name and namespace: rdf requires local name "RDF" and a URI
// belonging to RDF; atom requires local name "feed" and a URI belonging to
// Atom; rss accepts its name regardless of namespace. version defaults to
// "1.0" when the root carries no explicit version attribute.
func detectDialect(ns *NamespaceRegistry, local, uri string, attrs map[string]string) (dialect Dialect, version string, ok bool) {
	switch {
	case local == "RDF" && ns.IsRDF(uri):
		dialect = DialectRDF
	case local == "feed" && ns.IsAtom(uri):
		dialect = DialectAtom
	case local == "rss":
		dialect = DialectRSS
	default:
		return "", "", false
	}

	version = attrs["version"]
	if version == "" {
		version = "1.0"
	}
	return dialect, version, true
}
