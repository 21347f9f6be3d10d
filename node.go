package feedparser

import "strings"

// ValueKind distinguishes the three shapes a child slot can hold.
type ValueKind int

const (
	// KindText holds a bare string — either an element that collapsed to
	// text-only on close, or a value stored with SetText.
	KindText ValueKind = iota
	// KindNode holds exactly one child Node for this key.
	KindNode
	// KindList holds two or more child Nodes sharing this key, in
	// document order.
	KindList
)

// Value is the tagged union Text | One(Node) | Many([]Node) that a child
// slot in a Node's Children map holds. Only one of Text/Node/List is
// meaningful, selected by Kind.
type Value struct {
	Kind ValueKind
	Text string
	Node *Node
	List []*Node
}

func textValue(s string) *Value  { return &Value{Kind: KindText, Text: s} }
func nodeValue(n *Node) *Value   { return &Value{Kind: KindNode, Node: n} }
func listValue(l []*Node) *Value { return &Value{Kind: KindList, List: l} }

// Node is the unit the TreeBuilder accumulates for each XML element.
type Node struct {
	// Name is the qualified name as received (prefix:local or local).
	Name string
	// Prefix, Local, URI are as reported by the namespaced tokenizer.
	Prefix string
	Local  string
	URI    string

	// Attrs maps canonicalized attribute name to string value.
	Attrs map[string]string

	// Text is accumulated character data, trimmed on close.
	Text string

	// Children maps canonical child-name to its Value slot. Keys is the
	// insertion order of those names, so iteration is deterministic and
	// document-ordered.
	Children *ChildMap

	// Type is the canonical dialect tag attached on close: "atom", "rdf",
	// another registered prefix, or the raw prefix (empty for an unprefixed
	// element outside any registered namespace).
	Type string
}

// NewNode constructs an empty Node ready to accumulate attrs/text/children.
func NewNode(name, prefix, local, uri string) *Node {
	return &Node{
		Name:     name,
		Prefix:   prefix,
		Local:    local,
		URI:      uri,
		Attrs:    map[string]string{},
		Children: NewChildMap(),
	}
}

// IsTextOnly reports whether n has no attrs and no children, the condition
// under which a closed element collapses to its (possibly empty) text as a
// bare string in its parent.
func (n *Node) IsTextOnly() bool {
	return len(n.Attrs) == 0 && n.Children.Len() == 0
}

// ChildMap is an ordered name->Value map, preserving first-insertion order
// while supporting duplicate-key promotion from One to Many.
type ChildMap struct {
	keys []string
	m    map[string]*Value
}

// NewChildMap returns an empty ordered child map.
func NewChildMap() *ChildMap {
	return &ChildMap{m: map[string]*Value{}}
}

// Len returns the number of distinct keys stored.
func (c *ChildMap) Len() int { return len(c.keys) }

// Keys returns the stored keys in first-insertion order.
func (c *ChildMap) Keys() []string { return c.keys }

// Get returns the Value stored under key, or nil if absent.
func (c *ChildMap) Get(key string) *Value { return c.m[key] }

// SetText stores (or overwrites) a text-only value under key without
// participating in duplicate-key promotion.
func (c *ChildMap) SetText(key, text string) {
	if _, ok := c.m[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.m[key] = textValue(text)
}

// AddChild inserts a closed child (either a Node or, if it collapsed, a
// bare string carried as collapsedText) under key, promoting an existing
// single value to a list on the second insert under the same key.
func (c *ChildMap) AddChild(key string, child *Node, collapsed bool, collapsedText string) {
	existing, ok := c.m[key]
	if !ok {
		c.keys = append(c.keys, key)
		if collapsed {
			c.m[key] = textValue(collapsedText)
		} else {
			c.m[key] = nodeValue(child)
		}
		return
	}

	// Promote to a list. A collapsed text-only arrival meeting an
	// existing text-only value becomes two list entries carrying
	// synthetic text nodes, so callers always get []*Node back from a
	// list slot.
	var list []*Node
	switch existing.Kind {
	case KindNode:
		list = append(list, existing.Node)
	case KindList:
		list = append(list, existing.List...)
	case KindText:
		list = append(list, textNode(key, existing.Text))
	}
	if collapsed {
		list = append(list, textNode(key, collapsedText))
	} else {
		list = append(list, child)
	}
	c.m[key] = listValue(list)
}

// textNode wraps a bare string as a minimal Node so list slots are
// homogeneous; used only when promoting a collapsed text value into a
// list alongside structured siblings.
func textNode(name, text string) *Node {
	n := NewNode(name, "", name, "")
	n.Text = text
	return n
}

// text flattens a Value (or a nil Value) down to its textual content: the
// Text of a KindText value, the Text of a KindNode value's Node, or "" for
// an empty/list value. This is the `text(x)` helper from the design notes.
func text(v *Value) string {
	if v == nil {
		return ""
	}
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNode:
		if v.Node != nil {
			return strings.TrimSpace(v.Node.Text)
		}
	}
	return ""
}

// nodes returns the Value's children as a slice, regardless of whether it
// was stored as One or Many, so normalizers can loop uniformly.
func nodes(v *Value) []*Node {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case KindNode:
		if v.Node != nil {
			return []*Node{v.Node}
		}
	case KindList:
		return v.List
	}
	return nil
}

// attr returns n.Attrs[key], defaulting to "".
func attr(n *Node, key string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[key]
}
