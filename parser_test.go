package feedparser

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runEvents(t *testing.T, events []Event, opts ...Option) *collectSink {
	t.Helper()
	sink := &collectSink{}
	tb := newTreeBuilder(NewOptions(opts...), sink)
	err := tb.run(&sliceTokenizer{events: events})
	require.NoError(t, err)
	return sink
}

func TestRSS2_MinimalChannelAndItem(t *testing.T) {
	events := []Event{
		open("rss", mkAttr("version", "2.0")),
		open("channel"),
		open("title"), txt("A"), closeTag("title"),
		open("link"), txt("http://x/"), closeTag("link"),
		open("item"),
		open("title"), txt("T"), closeTag("title"),
		open("link"), txt("http://x/1"), closeTag("link"),
		open("pubdate"), txt("Mon, 01 Jan 2024 00:00:00 GMT"), closeTag("pubdate"),
		closeTag("item"),
		closeTag("channel"),
		closeTag("rss"),
	}
	sink := runEvents(t, events)

	require.Len(t, sink.metas, 1)
	assert.Equal(t, DialectRSS, sink.metas[0].Type)
	assert.Equal(t, "A", sink.metas[0].Title)

	require.Len(t, sink.articles, 1)
	art := sink.articles[0]
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), art.PubDate.UTC())
	assert.Equal(t, "http://x/1", art.GUID)
	assert.True(t, sink.ended)
}

func TestAtom_XMLBaseResolvesRelativeLink(t *testing.T) {
	events := []Event{
		openNS("feed", atomNS, mkAttrNS("xml:base", xmlNamespaceURI, "http://x/")),
		open("entry"),
		open("link", mkAttr("rel", "alternate"), mkAttr("href", "a")),
		closeTag("link"),
		open("title"), txt("T"), closeTag("title"),
		closeTag("entry"),
		closeTag("feed"),
	}
	sink := runEvents(t, events)

	require.Len(t, sink.metas, 1)
	assert.Equal(t, DialectAtom, sink.metas[0].Type)
	require.Len(t, sink.articles, 1)
	assert.Equal(t, "http://x/a", sink.articles[0].Link)
}

// The self link is a sibling of entry, already closed by the time entry
// closes, so lazy meta normalization discovers it and retroactively
// reresolves the just-closed entry subtree against it before the entry is
// normalized.
func TestAtom_SelfLinkRetroactivelyResolvesPrecedingEntry(t *testing.T) {
	events := []Event{
		openNS("feed", atomNS),
		open("link", mkAttr("rel", "self"), mkAttr("href", "http://x/feed.xml")),
		closeTag("link"),
		open("entry"),
		open("link", mkAttr("rel", "alternate"), mkAttr("href", "a")),
		closeTag("link"),
		closeTag("entry"),
		closeTag("feed"),
	}
	sink := runEvents(t, events)

	require.Len(t, sink.articles, 1)
	assert.Equal(t, "http://x/a", sink.articles[0].Link)
	assert.Equal(t, "http://x/feed.xml", sink.metas[0].XMLURL)
}

func TestRSS2_ItunesCategoryNestingJoinsWithSlash(t *testing.T) {
	const itunesNS = "http://www.itunes.com/dtds/podcast-1.0.dtd"
	events := []Event{
		open("rss", mkAttr("version", "2.0")),
		open("channel"),
		open("title"), txt("A"), closeTag("title"),
		openNS("itunes:category", itunesNS, mkAttr("text", "Tech")),
		openNS("itunes:category", itunesNS, mkAttr("text", "Software")),
		closeTagNS("itunes:category", itunesNS),
		closeTagNS("itunes:category", itunesNS),
		closeTag("channel"),
		closeTag("rss"),
	}
	sink := runEvents(t, events)

	require.Len(t, sink.metas, 1)
	assert.Equal(t, []string{"Tech/Software"}, sink.metas[0].Categories)
}

func TestRSS2_CategorySplitOnCommaAndDeduped(t *testing.T) {
	events := []Event{
		open("rss", mkAttr("version", "2.0")),
		open("channel"),
		open("title"), txt("A"), closeTag("title"),
		open("category"), txt("news, tech"), closeTag("category"),
		open("category"), txt("news"), closeTag("category"),
		closeTag("channel"),
		closeTag("rss"),
	}
	sink := runEvents(t, events)

	require.Len(t, sink.metas, 1)
	assert.Equal(t, []string{"news", "tech"}, sink.metas[0].Categories)
}

func TestAtom_XHTMLContentPassesThroughAsRawMarkup(t *testing.T) {
	events := []Event{
		openNS("feed", atomNS),
		open("entry"),
		open("content", mkAttr("type", "xhtml")),
		open("div", mkAttr("xmlns", "http://www.w3.org/1999/xhtml")),
		open("p"),
		txt("hi "),
		open("b"),
		txt("there"),
		closeTag("b"),
		closeTag("p"),
		closeTag("div"),
		closeTag("content"),
		closeTag("entry"),
		closeTag("feed"),
	}
	sink := runEvents(t, events)

	require.Len(t, sink.articles, 1)
	desc := sink.articles[0].Description
	assert.True(t, strings.HasPrefix(desc, "<div"), "description should start with <div, got %q", desc)
	assert.Contains(t, desc, "<p>hi <b>there</b></p>")
}

func TestSink_MetaAlwaysPrecedesFirstArticle(t *testing.T) {
	events := []Event{
		open("rss", mkAttr("version", "2.0")),
		open("channel"),
		open("item"), closeTag("item"),
		closeTag("channel"),
		closeTag("rss"),
	}
	sink := &collectSink{}
	order := []string{}
	wrapped := &orderTrackingSink{inner: sink, order: &order}
	tb := newTreeBuilder(NewOptions(), wrapped)
	require.NoError(t, tb.run(&sliceTokenizer{events: events}))
	require.GreaterOrEqual(t, len(order), 2)
	assert.Equal(t, "meta", order[0])
	assert.Equal(t, "article", order[1])
}

func TestExplicitFlag_CoercedAtFeedAndItemScope(t *testing.T) {
	const itunesNS = "http://www.itunes.com/dtds/podcast-1.0.dtd"
	events := []Event{
		open("rss", mkAttr("version", "2.0")),
		open("channel"),
		open("title"), txt("A"), closeTag("title"),
		openNS("itunes:explicit", itunesNS), txt("Yes"), closeTagNS("itunes:explicit", itunesNS),
		open("item"),
		open("title"), txt("T"), closeTag("title"),
		open("media:rating"), txt("nonadult"), closeTag("media:rating"),
		closeTag("item"),
		closeTag("channel"),
		closeTag("rss"),
	}
	sink := runEvents(t, events)

	require.Len(t, sink.metas, 1)
	assert.True(t, sink.metas[0].Explicit)
	require.Len(t, sink.articles, 1)
	assert.False(t, sink.articles[0].Explicit)
}

type orderTrackingSink struct {
	inner Sink
	order *[]string
}

func (o *orderTrackingSink) Meta(m *FeedMeta) {
	*o.order = append(*o.order, "meta")
	o.inner.Meta(m)
}
func (o *orderTrackingSink) Article(a *Article) {
	*o.order = append(*o.order, "article")
	o.inner.Article(a)
}
func (o *orderTrackingSink) Warning(err error)              { o.inner.Warning(err) }
func (o *orderTrackingSink) Error(err error)                { o.inner.Error(err) }
func (o *orderTrackingSink) End(arts []*Article, err error) { o.inner.End(arts, err) }
