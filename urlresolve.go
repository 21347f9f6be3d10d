package feedparser

import (
	"net/url"
	"strings"
)

// resolvableAttrs are the attribute local names whose values get resolved
// against the active xml:base.
var resolvableAttrs = map[string]bool{
	"href": true,
	"src":  true,
	"uri":  true,
}

// resolveURL resolves ref against base per standard URL-reference
// resolution. If ref is already absolute, or base is empty, ref is
// returned unchanged.
func resolveURL(base, ref string) string {
	if base == "" || ref == "" {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if refURL.IsAbs() {
		return ref
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

// reresolve recursively walks a Node tree, resolving every href/src/uri
// attribute and the text of Atom logo/icon descendants against base. It is
// used to retroactively fix URLs once a feed's canonical URL is discovered
// mid-parse (an Atom <link rel="self">).
func reresolve(n *Node, base string) {
	if n == nil || base == "" {
		return
	}
	for k, v := range n.Attrs {
		if resolvableAttrs[k] {
			n.Attrs[k] = resolveURL(base, v)
		}
	}
	if (n.Local == "logo" || n.Local == "icon") && strings.TrimSpace(n.Text) != "" {
		n.Text = resolveURL(base, strings.TrimSpace(n.Text))
	}
	for _, key := range n.Children.Keys() {
		v := n.Children.Get(key)
		switch v.Kind {
		case KindNode:
			reresolve(v.Node, base)
		case KindList:
			for _, child := range v.List {
				reresolve(child, base)
			}
		}
	}
}
