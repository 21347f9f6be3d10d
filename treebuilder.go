package feedparser

import (
	"strings"
)

const xmlNamespaceURI = "http://www.w3.org/xml/1998/namespace"

// baseFrame is one entry on the xml:base stack: the element name that
// introduced it, and the (already-resolved) base URL in effect while that
// element remains open.
type baseFrame struct {
	element string
	url     string
}

// xhtmlState tracks an active Atom type="xhtml" capture region.
type xhtmlState struct {
	active    bool
	container *Node
	nestDepth int
	buf       strings.Builder
}

// treeBuilder owns the element stack, the xml:base stack, the XHTML
// capture buffer, and the accumulated meta/articles/errors for exactly
// one parse session.
type treeBuilder struct {
	ns   *NamespaceRegistry
	opts Options
	sink Sink

	stack      []*Node // stack[len-1] is the innermost/top element
	baseStack  []baseFrame
	xhtml      xhtmlState
	namespaces []NamespaceDecl
	rootAttrs  []RootAttr

	dialect Dialect
	version string

	meta              *FeedMeta
	discoveredFeedURL string
	articles          []*Article
	errs              errorAccumulator
}

func newTreeBuilder(opts Options, sink Sink) *treeBuilder {
	return &treeBuilder{
		ns:   NewNamespaceRegistry(),
		opts: opts,
		sink: sink,
	}
}

// run drives tok to completion, dispatching each Event.
func (tb *treeBuilder) run(tok Tokenizer) error {
	for {
		ev, err := tok.Next()
		if err != nil {
			tb.errs.add(newParseError(KindIOError, err))
			break
		}
		switch ev.Kind {
		case EventOpenTag:
			tb.handleOpen(ev)
		case EventCloseTag:
			tb.handleClose(ev)
		case EventText:
			tb.handleText(ev.Text)
		case EventCDATA:
			tb.handleText(ev.Text)
		case EventWarning:
			tb.handleTokenizerWarning(ev.Err)
		case EventError:
			tb.handleTokenizerError(ev.Err)
		case EventEnd:
			goto done
		}
	}
done:
	last := tb.errs.Last()
	if tb.sink != nil {
		tb.sink.End(tb.articles, last)
	}
	return last
}

func (tb *treeBuilder) handleTokenizerWarning(err error) {
	if err == nil {
		return
	}
	pe := newParseError(KindTokenizerWarning, err)
	tb.errs.add(pe)
	if tb.opts.Logger != nil {
		tb.opts.Logger.WithField("error", err.Error()).Debug("tolerated XML quibble")
	}
	if tb.sink != nil {
		tb.sink.Warning(pe)
	}
}

func (tb *treeBuilder) handleTokenizerError(err error) {
	if err == nil {
		return
	}
	pe := newParseError(KindTokenizerError, err)
	tb.errs.add(pe)
	if tb.opts.Logger != nil {
		tb.opts.Logger.WithField("error", err.Error()).Warn("recoverable tokenizer error")
	}
	if tb.sink != nil {
		tb.sink.Error(pe)
	}
}

func (tb *treeBuilder) currentBase() string {
	if len(tb.baseStack) > 0 {
		return tb.baseStack[len(tb.baseStack)-1].url
	}
	if tb.discoveredFeedURL != "" {
		return tb.discoveredFeedURL
	}
	return tb.opts.FeedURL
}

func (tb *treeBuilder) pushBase(element, url string) {
	tb.baseStack = append(tb.baseStack, baseFrame{element: element, url: url})
}

func (tb *treeBuilder) popBaseIfMatches(element string) {
	if len(tb.baseStack) == 0 {
		return
	}
	if tb.baseStack[len(tb.baseStack)-1].element == element {
		tb.baseStack = tb.baseStack[:len(tb.baseStack)-1]
	}
}

func (tb *treeBuilder) top() *Node {
	if len(tb.stack) == 0 {
		return nil
	}
	return tb.stack[len(tb.stack)-1]
}

func (tb *treeBuilder) push(n *Node) { tb.stack = append(tb.stack, n) }

func (tb *treeBuilder) pop() *Node {
	if len(tb.stack) == 0 {
		return nil
	}
	n := tb.stack[len(tb.stack)-1]
	tb.stack = tb.stack[:len(tb.stack)-1]
	return n
}

// handleOpen processes an element-start event: XHTML-capture descendants
// are raw-serialized rather than pushed, everything else becomes a new
// Node with canonicalized attributes and is pushed onto the stack.
func (tb *treeBuilder) handleOpen(ev Event) {
	if tb.xhtml.active {
		tb.xhtml.nestDepth++
		tb.appendRawOpen(ev)
		return
	}

	n := NewNode(ev.Name, ev.Prefix, ev.Local, ev.URI)
	tb.canonicalizeAttrs(n, ev)

	if len(tb.stack) == 0 {
		if dialect, version, ok := detectDialect(tb.ns, ev.Local, ev.URI, n.Attrs); ok {
			tb.dialect = dialect
			tb.version = version
			for k, v := range n.Attrs {
				if k == "version" {
					continue
				}
				tb.rootAttrs = append(tb.rootAttrs, RootAttr{Name: k, Value: v})
			}
		} else if tb.opts.Logger != nil {
			tb.opts.Logger.WithField("root", ev.Local).Debug("root element matched no known feed dialect, falling back to raw tree")
		}
	}

	tb.push(n)
}

// canonicalizeAttrs applies the attribute canonicalization rules to every
// raw attribute of an opening element, storing the result into n.Attrs:
// recording xmlns declarations, picking the canonical emitted key,
// resolving href/src/uri and xml:base against the active base, and
// activating XHTML capture on type="xhtml".
func (tb *treeBuilder) canonicalizeAttrs(n *Node, ev Event) {
	for _, a := range ev.Attrs {
		// Step 1: xmlns declarations feed the namespace list.
		if a.Prefix == "xmlns" {
			tb.namespaces = append(tb.namespaces, NamespaceDecl{Prefix: a.Local, URI: a.Value})
		}

		// Step 2: determine the emitted key.
		key := a.Local
		hasURIAndPrefix := a.URI != "" && a.Prefix != ""
		if hasURIAndPrefix {
			belongs := tb.ns.BelongsTo(a.URI, a.Prefix)
			isXML := tb.ns.BelongsTo(a.URI, "xml")
			if !belongs || isXML {
				prefix, ok := tb.ns.CanonicalPrefix(a.URI)
				if !ok {
					prefix = a.Prefix
				}
				key = prefix + ":" + a.Local
			}
		}

		value := a.Value

		// Step 4: xml:base attribute — resolve against current base, push
		// a frame keyed by the containing element.
		if a.Local == "base" && (a.URI == xmlNamespaceURI || a.Prefix == "xml") {
			resolved := resolveURL(tb.currentBase(), a.Value)
			tb.pushBase(n.Name, resolved)
			value = resolved
		} else if resolvableAttrs[a.Local] {
			// Step 3: href/src/uri resolved against the (possibly just-
			// updated) active base.
			if base := tb.currentBase(); base != "" {
				value = resolveURL(base, value)
			}
		}

		// Step 5: type="xhtml" activates XHTML capture for this element.
		if a.Local == "type" && a.Value == "xhtml" {
			tb.xhtml.active = true
			tb.xhtml.container = n
			tb.xhtml.nestDepth = 0
		}

		// Step 6: trim and store.
		n.Attrs[key] = strings.TrimSpace(value)
	}
}

// appendRawOpen serializes an open-tag event verbatim into the active
// XHTML buffer, using the element's original qualified name and raw
// attribute names/values (no canonicalization — this is markup
// passthrough, not a core tree node).
func (tb *treeBuilder) appendRawOpen(ev Event) {
	tb.xhtml.buf.WriteString("<")
	tb.xhtml.buf.WriteString(ev.Name)
	for _, a := range ev.Attrs {
		tb.xhtml.buf.WriteString(" ")
		tb.xhtml.buf.WriteString(a.Name)
		tb.xhtml.buf.WriteString(`="`)
		tb.xhtml.buf.WriteString(escapeAttr(a.Value))
		tb.xhtml.buf.WriteString(`"`)
	}
	tb.xhtml.buf.WriteString(">")
}

func escapeAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", `"`, "&quot;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

// handleText implements the text/CDATA rule: append to the XHTML buffer if
// capture is active, otherwise to the top-of-stack node's accumulated text.
func (tb *treeBuilder) handleText(s string) {
	if tb.xhtml.active {
		tb.xhtml.buf.WriteString(escapeText(s))
		return
	}
	if n := tb.top(); n != nil {
		n.Text += s
	}
}

// handleClose processes an element-end event end to end: classifying the
// closed node's type, popping a matching xml:base frame, resolving Atom
// logo/icon text, flushing an XHTML capture, trimming whitespace-only
// text, normalizing/emitting a completed channel/feed or item/entry, and
// attaching any node other than an item/entry to its parent.
func (tb *treeBuilder) handleClose(ev Event) {
	if tb.xhtml.active && tb.xhtml.nestDepth > 0 {
		tb.xhtml.nestDepth--
		tb.xhtml.buf.WriteString("</")
		tb.xhtml.buf.WriteString(ev.Name)
		tb.xhtml.buf.WriteString(">")
		return
	}

	n := tb.pop()
	if n == nil {
		return
	}

	// Step 2: canonical type.
	classifyType(tb.ns, n)

	// Step 3: pop a matching xml:base frame.
	tb.popBaseIfMatches(n.Name)

	// Step 4: Atom logo/icon text resolution.
	if tb.dialect == DialectAtom && (n.Local == "logo" || n.Local == "icon") {
		if base := tb.currentBase(); base != "" {
			n.Text = resolveURL(base, strings.TrimSpace(n.Text))
		}
	}

	// Step 5: flush XHTML capture if n is the container.
	if tb.xhtml.active && tb.xhtml.container == n {
		n.Text = tb.xhtml.buf.String()
		n.Children = NewChildMap()
		tb.xhtml.active = false
		tb.xhtml.container = nil
		tb.xhtml.nestDepth = 0
		tb.xhtml.buf.Reset()
	}

	// Step 6: trim/discard whitespace-only text.
	n.Text = strings.TrimSpace(n.Text)
	collapse := n.IsTextOnly()

	// Step 7: element classification -> normalize & emit.
	tb.classifyAndEmit(n)

	// Step 8: attach to parent. A closed item/entry has already been
	// normalized and emitted, so its subtree is dropped instead.
	if tb.isItemOrEntry(n) {
		return
	}
	parent := tb.top()
	if parent != nil {
		key := tb.childKey(n)
		parent.Children.AddChild(key, n, collapse, n.Text)
	}
}

// childKey picks the key a closed node is attached under in its parent's
// Children map: its bare local name if unprefixed or if its namespace is
// one of the three core dialects, otherwise its canonical (or raw) prefix
// joined with its local name.
func (tb *treeBuilder) childKey(n *Node) string {
	if n.Prefix == "" {
		return n.Local
	}
	if p, ok := tb.ns.CanonicalPrefix(n.URI); ok {
		if p == "rss" || p == "rdf" || p == "atom" {
			return n.Local
		}
		return p + ":" + n.Local
	}
	return n.Prefix + ":" + n.Local
}

// classifyType sets n.Type to the canonical dialect tag for n's namespace:
// "atom"/"rdf" for those namespaces specifically, else the canonical
// prefix for any other recognized namespace, else the raw prefix.
func classifyType(ns *NamespaceRegistry, n *Node) {
	if n.Prefix != "" {
		if ns.IsAtom(n.URI) {
			n.Type = "atom"
			return
		}
		if ns.IsRDF(n.URI) {
			n.Type = "rdf"
			return
		}
		if p, ok := ns.CanonicalPrefix(n.URI); ok {
			n.Type = p
			return
		}
		n.Type = n.Prefix
		return
	}
	if p, ok := ns.CanonicalPrefix(n.URI); ok {
		n.Type = p
		return
	}
	n.Type = n.Prefix
}

func (tb *treeBuilder) isItemOrEntry(n *Node) bool {
	if tb.dialect == DialectAtom {
		return n.Local == "entry" && (n.URI == "" || tb.ns.IsAtom(n.URI))
	}
	return n.Local == "item" && (n.URI == "" || tb.ns.IsRDF(n.URI))
}

func (tb *treeBuilder) isChannelOrFeed(n *Node) bool {
	if tb.dialect == DialectAtom {
		return n.Local == "feed"
	}
	return n.Local == "channel"
}

// classifyAndEmit lazily normalizes meta from the still-open channel/feed
// on the first item/entry close, normalizes each item into an article, and
// normalizes channel/feed directly if it closes before any item triggered
// lazy normalization.
func (tb *treeBuilder) classifyAndEmit(n *Node) {
	switch {
	case tb.isItemOrEntry(n):
		if tb.meta == nil {
			if parent := tb.top(); parent != nil {
				discovered := tb.normalizeMeta(parent)
				tb.emitMeta()
				if discovered != "" {
					reresolve(n, discovered)
				}
			}
		}
		article := tb.normalizeItem(n)
		if tb.opts.AddMeta {
			article.Meta = tb.meta
		}
		if article.Author == "" && tb.meta != nil {
			article.Author = tb.meta.Author
		}
		tb.articles = append(tb.articles, article)
		if tb.sink != nil {
			tb.sink.Article(article)
		}
	case tb.isChannelOrFeed(n) && tb.meta == nil:
		tb.normalizeMeta(n)
		tb.emitMeta()
	}
}

func (tb *treeBuilder) emitMeta() {
	if tb.sink != nil && tb.meta != nil {
		tb.sink.Meta(tb.meta)
	}
}
