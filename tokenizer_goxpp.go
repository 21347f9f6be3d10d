package feedparser

import (
	"fmt"
	"io"
	"strings"

	xpp "github.com/mmcdole/goxpp"
	"golang.org/x/net/html/charset"
)

// goxppTokenizer adapts github.com/mmcdole/goxpp's namespace-aware XML
// pull parser into this module's Event stream. It is the default
// Tokenizer implementation; callers needing a different byte-level
// tokenizer can supply their own, since Tokenizer is an ordinary
// interface and nothing downstream depends on goxpp directly.
type goxppTokenizer struct {
	p        *xpp.XMLPullParser
	seenNS   map[string]string // URI -> prefix already reported via a synthesized xmlns attr
	finished bool
	pending  []Event // warnings queued ahead of the open-tag event that triggered them
}

// newGoxppTokenizer wraps r with a charset-aware reader (defaulting non-
// UTF-8 declared encodings through golang.org/x/net/html/charset) and
// returns a ready-to-drive Tokenizer.
func newGoxppTokenizer(r io.Reader, strict bool) (*goxppTokenizer, error) {
	p := xpp.NewXMLPullParser(r, strict, charset.NewReaderLabel)
	return &goxppTokenizer{p: p, seenNS: map[string]string{}}, nil
}

// Next implements Tokenizer.
func (t *goxppTokenizer) Next() (Event, error) {
	if len(t.pending) > 0 {
		return t.popPending(), nil
	}
	if t.finished {
		return Event{Kind: EventEnd}, nil
	}

	tok, err := t.p.Next()
	if err != nil {
		if err == io.EOF {
			t.finished = true
			return Event{Kind: EventEnd}, nil
		}
		// encoding/xml returns the same syntax error on every later call,
		// so the error is reported once and the stream then ends.
		t.finished = true
		return Event{Kind: EventError, Err: err}, nil
	}

	switch tok {
	case xpp.StartTag:
		ev := t.openEvent()
		if len(t.pending) > 0 {
			t.pending = append(t.pending, ev)
			return t.popPending(), nil
		}
		return ev, nil
	case xpp.EndTag:
		return Event{
			Kind:   EventCloseTag,
			Name:   qualifiedName(t.prefixFor(t.p.Space), t.p.Name),
			Prefix: t.prefixFor(t.p.Space),
			Local:  strings.ToLower(t.p.Name),
			URI:    t.p.Space,
		}, nil
	case xpp.Text:
		return Event{Kind: EventText, Text: t.p.Text()}, nil
	case xpp.EndDocument:
		t.finished = true
		return Event{Kind: EventEnd}, nil
	default:
		// Comments, processing instructions, directives: skip by asking
		// for the next real event.
		return t.Next()
	}
}

// openEvent builds an EventOpenTag, synthesizing xmlns attribute events
// for any namespace binding goxpp's Spaces map has not yet surfaced. goxpp
// resolves namespaces internally and does not hand back raw xmlns
// attributes on Attrs, so new entries in p.Spaces since the last open tag
// are the signal that a binding was just declared on this element.
func (t *goxppTokenizer) openEvent() Event {
	prefix := t.prefixFor(t.p.Space)
	local := strings.ToLower(t.p.Name)

	ev := Event{
		Kind:   EventOpenTag,
		Name:   qualifiedName(prefix, local),
		Prefix: prefix,
		Local:  local,
		URI:    t.p.Space,
	}

	for uri, declaredPrefix := range t.p.Spaces {
		if _, ok := t.seenNS[uri]; ok {
			continue
		}
		t.seenNS[uri] = declaredPrefix
		if declaredPrefix == "" {
			ev.Attrs = append(ev.Attrs, EventAttr{Name: "xmlns", Prefix: "", Local: "xmlns", Value: uri})
		} else {
			ev.Attrs = append(ev.Attrs, EventAttr{Name: "xmlns:" + declaredPrefix, Prefix: "xmlns", Local: declaredPrefix, Value: uri})
		}
	}

	seenAttr := make(map[string]bool, len(t.p.Attrs))
	for _, a := range t.p.Attrs {
		aPrefix := t.prefixFor(a.Name.Space)
		aLocal := strings.ToLower(a.Name.Local)
		qname := qualifiedName(aPrefix, aLocal)

		if seenAttr[qname] {
			t.pending = append(t.pending, Event{
				Kind: EventWarning,
				Err:  fmt.Errorf("duplicate attribute %q on <%s>: keeping first occurrence", qname, ev.Name),
			})
			continue
		}
		seenAttr[qname] = true

		ev.Attrs = append(ev.Attrs, EventAttr{
			Name:   qname,
			Prefix: aPrefix,
			Local:  aLocal,
			URI:    a.Name.Space,
			Value:  a.Value,
		})
	}

	return ev
}

// popPending removes and returns the first queued event.
func (t *goxppTokenizer) popPending() Event {
	ev := t.pending[0]
	t.pending = t.pending[1:]
	return ev
}

// prefixFor returns the document-declared prefix for uri, per goxpp's
// Spaces map (URI -> prefix), or "" for the default namespace / no match.
func (t *goxppTokenizer) prefixFor(uri string) string {
	if uri == "" {
		return ""
	}
	if p, ok := t.p.Spaces[uri]; ok {
		return p
	}
	return ""
}

func qualifiedName(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}
