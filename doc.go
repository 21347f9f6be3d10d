// Package feedparser is a streaming syndication-feed parser for RSS
// (0.9x/2.0), RDF Site Summary (RSS 1.0), and Atom (0.3/1.0).
//
// It consumes an XML byte stream and emits a normalized, dialect-agnostic
// FeedMeta record plus a sequence of Article records, while preserving
// every namespaced extension element it encounters along the way. Parsing
// is driven by a SAX-like Tokenizer (github.com/mmcdole/goxpp by default)
// so the XML tree held in memory stays bounded by one article plus the
// feed-level metadata block; the normalized Articles themselves are still
// collected for delivery at the end of the stream.
package feedparser
