package feedparser

import (
	"github.com/sirupsen/logrus"
)

// Options configures a parse. Zero value is not directly usable — build
// one with NewOptions, which applies sensible defaults before Option
// funcs run.
type Options struct {
	Strict    bool
	Normalize bool
	AddMeta   bool
	FeedURL   string
	Logger    *logrus.Logger
}

// Option mutates an Options in the fluent WithXxx(...) style.
type Option func(*Options)

// WithStrict sets whether the tokenizer rejects malformed XML. Default false.
func WithStrict(strict bool) Option { return func(o *Options) { o.Strict = strict } }

// WithNormalize sets whether MetaNormalizer/ItemNormalizer run at all; if
// false, raw trees are returned instead of the canonical schema. Default true.
func WithNormalize(normalize bool) Option { return func(o *Options) { o.Normalize = normalize } }

// WithAddMeta sets whether each emitted Article carries a back-reference
// to the feed's FeedMeta. Default true.
func WithAddMeta(addMeta bool) Option { return func(o *Options) { o.AddMeta = addMeta } }

// WithFeedURL pre-seeds the xml:base used before any xml:base attribute or
// Atom self link is observed. Default unset.
func WithFeedURL(url string) Option { return func(o *Options) { o.FeedURL = url } }

// WithLogger sets the optional diagnostic logger. Default is a discard logger.
func WithLogger(logger *logrus.Logger) Option { return func(o *Options) { o.Logger = logger } }

// NewOptions builds an Options with its defaults, then applies opts in order.
func NewOptions(opts ...Option) Options {
	o := Options{
		Strict:    false,
		Normalize: true,
		AddMeta:   true,
		Logger:    discardLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = discardLogger()
	}
	return o
}

// Sink is the observable output contract: meta exactly once before any
// article, articles in document order, warnings/errors as they occur, and
// end exactly once.
type Sink interface {
	Meta(meta *FeedMeta)
	Article(article *Article)
	Warning(err error)
	Error(err error)
	End(articles []*Article, err error)
}

// Driver runs a Tokenizer through a TreeBuilder and fans its output out to
// a Sink, honoring the module's warning/error/end-of-stream propagation
// contract.
type Driver struct {
	tokenizer Tokenizer
	opts      Options
	sink      Sink
}

// NewDriver builds a Driver over tokenizer, delivering events to sink.
func NewDriver(tokenizer Tokenizer, sink Sink, opts ...Option) *Driver {
	return &Driver{tokenizer: tokenizer, opts: NewOptions(opts...), sink: sink}
}

// Run drives the Tokenizer to completion, emitting into the Driver's Sink.
// It returns the accumulated error (if any), mirroring what a completion
// callback would receive as its primary error.
func (d *Driver) Run() error {
	tb := newTreeBuilder(d.opts, d.sink)
	return tb.run(d.tokenizer)
}

// collectingSink accumulates meta and articles for the completion-callback
// form of the API (warnings, errors and end are ignored; ParseFeed takes the
// error from Run): a thin shim layered over the observable Sink.
type collectingSink struct {
	meta     *FeedMeta
	articles []*Article
}

func (c *collectingSink) Meta(meta *FeedMeta)                { c.meta = meta }
func (c *collectingSink) Article(article *Article)           { c.articles = append(c.articles, article) }
func (c *collectingSink) Warning(err error)                  {}
func (c *collectingSink) Error(err error)                    {}
func (c *collectingSink) End(articles []*Article, err error) {}

// ParseFeed runs a complete parse over tokenizer and returns the feed
// metadata and articles, or the accumulated error. This is the
// completion-callback convenience entry point layered over the Sink-based
// Driver; streaming callers should use NewDriver directly.
func ParseFeed(tokenizer Tokenizer, opts ...Option) (*FeedMeta, []*Article, error) {
	cs := &collectingSink{}
	d := NewDriver(tokenizer, cs, opts...)
	if err := d.Run(); err != nil {
		return nil, nil, err
	}
	return cs.meta, cs.articles, nil
}

// ParseFeedFromReader is ParseFeed over a byte stream, using the default
// goxpp-backed Tokenizer.
func ParseFeedFromReader(r interface {
	Read(p []byte) (n int, err error)
}, opts ...Option) (*FeedMeta, []*Article, error) {
	o := NewOptions(opts...)
	tok, err := newGoxppTokenizer(r, o.Strict)
	if err != nil {
		return nil, nil, err
	}
	return ParseFeed(tok, opts...)
}
