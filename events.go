package feedparser

// EventKind identifies the kind of SAX-like event a Tokenizer emits.
type EventKind int

const (
	// EventOpenTag signals an element start.
	EventOpenTag EventKind = iota
	// EventCloseTag signals an element end.
	EventCloseTag
	// EventText signals character data.
	EventText
	// EventCDATA signals a CDATA section's content.
	EventCDATA
	// EventEnd signals the terminal event of the stream: no further
	// events will be delivered.
	EventEnd
	// EventWarning signals a recoverable XML quibble the Tokenizer chose
	// to tolerate and keep going past (e.g. a duplicate attribute): worth
	// surfacing, never worth stopping for.
	EventWarning
	// EventError signals a tokenizer-level problem serious enough that
	// the resulting tree may be incomplete, but not serious enough to
	// abort the stream outright.
	EventError
)

// EventAttr is one raw attribute on an EventOpenTag event.
type EventAttr struct {
	Name   string // qualified name as received
	Prefix string
	Local  string
	URI    string
	Value  string
}

// Event is one item of the SAX-like stream the TreeBuilder consumes. Only
// the fields relevant to Kind are populated.
type Event struct {
	Kind EventKind

	// Open/close tag fields.
	Name   string
	Prefix string
	Local  string
	URI    string
	Attrs  []EventAttr

	// Text/CDATA payload.
	Text string

	// Error payload (EventWarning/EventError only).
	Err error
}

// Tokenizer produces a stream of Events for TreeBuilder to consume. It is
// the external collaborator the core is built against: callers may supply
// their own Tokenizer, and the module ships one default implementation
// (goxppTokenizer) built on github.com/mmcdole/goxpp.
//
// Next returns the next Event. Once it returns an Event with Kind ==
// EventEnd, or a non-nil error, the Tokenizer is exhausted and must not be
// called again.
type Tokenizer interface {
	Next() (Event, error)
}
