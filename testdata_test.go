package feedparser

const (
	atomNS = "http://www.w3.org/2005/Atom"
	rdfNS  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	rss1NS = "http://purl.org/rss/1.0/"
)

// sliceTokenizer replays a fixed slice of Events, used by tests to drive
// the TreeBuilder without depending on a real XML byte stream or the
// goxpp library's exact runtime behavior.
type sliceTokenizer struct {
	events []Event
	i      int
}

func (s *sliceTokenizer) Next() (Event, error) {
	if s.i >= len(s.events) {
		return Event{Kind: EventEnd}, nil
	}
	e := s.events[s.i]
	s.i++
	return e, nil
}

func mkAttr(name, value string) EventAttr {
	prefix, local := splitQName(name)
	return EventAttr{Name: name, Prefix: prefix, Local: local, Value: value}
}

func mkAttrNS(name, uri, value string) EventAttr {
	prefix, local := splitQName(name)
	return EventAttr{Name: name, Prefix: prefix, Local: local, URI: uri, Value: value}
}

func splitQName(name string) (prefix, local string) {
	for i := 0; i < len(name); i++ {
		if name[i] == ':' {
			return name[:i], name[i+1:]
		}
	}
	return "", name
}

func open(name string, attrs ...EventAttr) Event {
	prefix, local := splitQName(name)
	return Event{Kind: EventOpenTag, Name: name, Prefix: prefix, Local: local, Attrs: attrs}
}

func openNS(name, uri string, attrs ...EventAttr) Event {
	prefix, local := splitQName(name)
	return Event{Kind: EventOpenTag, Name: name, Prefix: prefix, Local: local, URI: uri, Attrs: attrs}
}

func closeTag(name string) Event {
	prefix, local := splitQName(name)
	return Event{Kind: EventCloseTag, Name: name, Prefix: prefix, Local: local}
}

func closeTagNS(name, uri string) Event {
	prefix, local := splitQName(name)
	return Event{Kind: EventCloseTag, Name: name, Prefix: prefix, Local: local, URI: uri}
}

func txt(s string) Event { return Event{Kind: EventText, Text: s} }

// collectSink records every call for assertion.
type collectSink struct {
	metas    []*FeedMeta
	articles []*Article
	warnings []error
	errors   []error
	ended    bool
	endErr   error
	endArts  []*Article
}

func (c *collectSink) Meta(m *FeedMeta)      { c.metas = append(c.metas, m) }
func (c *collectSink) Article(a *Article)    { c.articles = append(c.articles, a) }
func (c *collectSink) Warning(err error)     { c.warnings = append(c.warnings, err) }
func (c *collectSink) Error(err error)       { c.errors = append(c.errors, err) }
func (c *collectSink) End(arts []*Article, err error) {
	c.ended = true
	c.endArts = arts
	c.endErr = err
}
