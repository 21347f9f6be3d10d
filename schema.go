package feedparser

import (
	"fmt"
	"time"
)

// NamespaceDecl is one xmlns declaration observed anywhere in the document.
type NamespaceDecl struct {
	Prefix string
	URI    string
}

// RootAttr is one attribute observed on the root channel/feed element,
// excluding "version".
type RootAttr struct {
	Name  string
	Value string
}

// Image is a feed- or article-level image reference.
type Image struct {
	URL   string
	Title string
}

// Source is the originating feed reference carried by an Article when the
// item declares an RSS/Atom <source>.
type Source struct {
	Title string
	URL   string
}

// Enclosure is a media attachment declared on an Article.
type Enclosure struct {
	URL    string
	Type   string
	Length string
}

// FeedMeta is the canonical, dialect-agnostic feed-level metadata record.
// All fields are nullable (zero-valued) except the slices, which are never
// nil after normalization (they may be empty).
type FeedMeta struct {
	Namespaces []NamespaceDecl
	RootAttrs  []RootAttr

	Type    Dialect
	Version string

	Title       string
	Description string
	Date        time.Time
	PubDate     time.Time
	Link        string
	XMLURL      string
	Author      string
	Language    string
	Image       *Image
	Favicon     string
	Copyright   string
	Generator   string
	Categories  []string

	// Explicit coerces itunes:explicit / media:rating into a boolean flag.
	Explicit bool

	// Extensions holds every preserved namespaced child of channel/feed,
	// keyed as "{canonicalPrefix}:{local}", falling back to
	// "{rawPrefix}:{local}" or "{dialectType}:{local}" when no canonical
	// prefix is known for the element's namespace.
	Extensions map[string]*Value
}

// String returns a compact one-line debug summary, not used by
// normalization logic itself.
func (m *FeedMeta) String() string {
	if m == nil {
		return "<nil feed>"
	}
	return fmt.Sprintf("%s feed %q", m.Type, m.Title)
}

// Article is the canonical, dialect-agnostic per-item record.
type Article struct {
	Title       string
	Description string
	Summary     string
	Date        time.Time
	PubDate     time.Time
	Link        string
	OrigLink    string
	Author      string
	GUID        string
	Comments    string
	Image       *Image
	Source      *Source
	Categories  []string
	Enclosures  []Enclosure

	// Explicit coerces itunes:explicit / media:rating into a boolean flag.
	Explicit bool

	// Meta back-references the parent feed's metadata, attached iff the
	// addmeta option is set.
	Meta *FeedMeta

	// Extensions holds every preserved namespaced child of item/entry.
	Extensions map[string]*Value
}

// String returns a compact one-line debug summary (title only), in the
// teacher's spirit of small ergonomic helpers.
func (a *Article) String() string {
	if a == nil {
		return "<nil article>"
	}
	return fmt.Sprintf("article %q", a.Title)
}
