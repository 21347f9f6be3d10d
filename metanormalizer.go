package feedparser

import "strings"

// normalizeMeta maps the still-open channel/feed Node onto tb.meta. It
// returns the feed's self-referential URL if one was freshly discovered
// during this call (an Atom <link rel="self">), so the caller can
// retroactively reresolve a sibling item/entry that was waiting on it.
func (tb *treeBuilder) normalizeMeta(root *Node) string {
	meta := &FeedMeta{
		Type:       tb.dialect,
		Version:    tb.version,
		Namespaces: tb.namespaces,
		RootAttrs:  tb.rootAttrs,
		Extensions: map[string]*Value{},
	}
	if meta.Namespaces == nil {
		meta.Namespaces = []NamespaceDecl{}
	}
	if meta.RootAttrs == nil {
		meta.RootAttrs = []RootAttr{}
	}
	tb.meta = meta

	if !tb.opts.Normalize {
		for _, key := range root.Children.Keys() {
			meta.Extensions[key] = root.Children.Get(key)
		}
		return ""
	}

	var discovered string
	var categories []string

	for _, key := range root.Children.Keys() {
		v := root.Children.Get(key)
		switch key {
		case "title":
			meta.Title = text(v)
		case "description", "subtitle":
			meta.Description = text(v)
		case "pubdate", "published":
			meta.PubDate = parseDate(text(v))
			if meta.Date.IsZero() {
				meta.Date = meta.PubDate
			}
		case "lastbuilddate", "modified", "updated", "dc:date":
			meta.Date = parseDate(text(v))
			if meta.PubDate.IsZero() {
				meta.PubDate = meta.Date
			}
		case "link", "atom:link", "atom10:link":
			els := nodes(v)
			if len(els) == 0 {
				if meta.Link == "" {
					meta.Link = text(v)
				}
				break
			}
			for _, el := range els {
				href := attr(el, "href")
				if href != "" {
					rel := attr(el, "rel")
					switch rel {
					case "self":
						meta.XMLURL = href
						if tb.currentBaseIsUnset() {
							discovered = href
							tb.discoveredFeedURL = href
						}
						reresolve(root, href)
					case "alternate", "":
						if meta.Link == "" {
							meta.Link = href
						}
					}
				} else if meta.Link == "" {
					meta.Link = text(el)
				}
			}
		case "managingeditor", "webmaster":
			if meta.Author == "" {
				meta.Author = text(v)
			}
		case "author":
			meta.Author = personText(v)
		case "language":
			meta.Language = text(v)
		case "image", "logo":
			meta.Image = imageFrom(v)
		case "icon":
			meta.Favicon = text(v)
		case "copyright", "rights", "dc:rights":
			meta.Copyright = text(v)
		case "generator":
			meta.Generator = generatorText(v)
		case "category", "dc:subject", "itunes:category", "media:category":
			categories = append(categories, extractCategories(key, v)...)
		default:
			// handled in the extensions pass below
		}
	}

	if meta.Description == "" {
		meta.Description = firstNonEmpty(text(root.Children.Get("itunes:summary")), text(root.Children.Get("tagline")))
	}
	if meta.Author == "" {
		meta.Author = firstNonEmpty(
			text(root.Children.Get("itunes:author")),
			nestedText(root.Children.Get("itunes:owner"), "itunes:name"),
			text(root.Children.Get("dc:creator")),
			text(root.Children.Get("dc:publisher")),
		)
	}
	if meta.Language == "" {
		meta.Language = firstNonEmpty(attr(root, "xml:lang"), text(root.Children.Get("dc:language")))
	}
	if meta.Image == nil || meta.Image.URL == "" {
		url := firstNonEmpty(
			attr(firstNode(root.Children.Get("itunes:image")), "href"),
			attr(firstNode(root.Children.Get("media:thumbnail")), "url"),
		)
		if url != "" {
			if meta.Image == nil {
				meta.Image = &Image{}
			}
			meta.Image.URL = url
		}
	}
	if meta.Copyright == "" {
		meta.Copyright = firstNonEmpty(
			text(root.Children.Get("media:copyright")),
			text(root.Children.Get("dc:rights")),
			firstResourceAttr(root.Children.Get("creativecommons:license")),
			firstResourceAttr(root.Children.Get("cc:license")),
		)
	}
	if meta.Generator == "" {
		meta.Generator = firstResourceAttr(root.Children.Get("admin:generatoragent"))
	}
	meta.Categories = dedupStrings(categories)

	explicitRaw := firstNonEmpty(text(root.Children.Get("itunes:explicit")), text(root.Children.Get("media:rating")))
	meta.Explicit = isExplicitFlag(explicitRaw)

	for _, key := range root.Children.Keys() {
		if strings.HasPrefix(key, "#") {
			continue
		}
		ekey := key
		if !strings.Contains(ekey, ":") {
			ekey = string(tb.dialect) + ":" + ekey
		}
		meta.Extensions[ekey] = root.Children.Get(key)
	}

	return discovered
}

// currentBaseIsUnset reports whether no explicit base has been
// established yet — neither via xml:base, a pre-seeded feedurl option, nor
// an earlier discovered self link — so a self link seen now should both
// populate xmlurl and become the active base.
func (tb *treeBuilder) currentBaseIsUnset() bool {
	return len(tb.baseStack) == 0 && tb.discoveredFeedURL == "" && tb.opts.FeedURL == ""
}

// personText extracts an author-ish node's display text, preferring a
// structured name/email/uri child, else falling back to its own text.
func personText(v *Value) string {
	n := firstNode(v)
	if n == nil {
		return text(v)
	}
	if name := text(n.Children.Get("name")); name != "" {
		return name
	}
	if email := text(n.Children.Get("email")); email != "" {
		return email
	}
	if uri := text(n.Children.Get("uri")); uri != "" {
		return uri
	}
	return text(v)
}

// imageFrom builds an Image from an image/logo child, preferring a nested
// url/title structure and falling back to the element's own text as the URL.
func imageFrom(v *Value) *Image {
	n := firstNode(v)
	if n == nil {
		if s := text(v); s != "" {
			return &Image{URL: s}
		}
		return nil
	}
	img := &Image{
		URL:   firstNonEmpty(text(n.Children.Get("url")), text(v)),
		Title: text(n.Children.Get("title")),
	}
	return img
}

// generatorText extracts generator text, appending its optional
// version/uri attributes when present.
func generatorText(v *Value) string {
	n := firstNode(v)
	base := text(v)
	if n == nil {
		return base
	}
	out := base
	if ver := attr(n, "version"); ver != "" {
		out += " v" + ver
	}
	if uri := firstNonEmpty(attr(n, "uri"), attr(n, "url")); uri != "" {
		out += " (" + uri + ")"
	}
	return strings.TrimSpace(out)
}

// firstNode returns the first Node carried by v, whether it is a single
// node or a list, or nil.
func firstNode(v *Value) *Node {
	ns := nodes(v)
	if len(ns) == 0 {
		return nil
	}
	return ns[0]
}

// nestedText extracts the text of child's nested grandchild key.
func nestedText(v *Value, grandchild string) string {
	n := firstNode(v)
	if n == nil {
		return ""
	}
	return text(n.Children.Get(grandchild))
}

// firstResourceAttr extracts the rdf:resource attribute from the first
// node carried by v.
func firstResourceAttr(v *Value) string {
	n := firstNode(v)
	if n == nil {
		return ""
	}
	return firstNonEmpty(attr(n, "rdf:resource"), attr(n, "resource"))
}

// extractCategories applies the per-namespace category rules: RSS category
// text splits on commas, dc:subject splits on whitespace, iTunes categories
// join nested subcategories with "/", an Atom category reads its term
// attribute, and media:category reads its text.
func extractCategories(key string, v *Value) []string {
	var out []string
	switch key {
	case "category":
		for _, n := range nodes(v) {
			if term := attr(n, "term"); term != "" {
				out = append(out, term)
				continue
			}
			out = append(out, splitComma(strings.TrimSpace(n.Text))...)
		}
		if len(nodes(v)) == 0 {
			out = append(out, splitComma(text(v))...)
		}
	case "dc:subject":
		for _, n := range nodes(v) {
			out = append(out, splitWhitespace(n.Text)...)
		}
		if len(nodes(v)) == 0 {
			out = append(out, splitWhitespace(text(v))...)
		}
	case "itunes:category":
		for _, n := range nodes(v) {
			top := attr(n, "text")
			if top == "" {
				continue
			}
			nested := n.Children.Get("itunes:category")
			subs := nodes(nested)
			if len(subs) == 0 {
				out = append(out, top)
				continue
			}
			for _, sub := range subs {
				if subText := attr(sub, "text"); subText != "" {
					out = append(out, top+"/"+subText)
				}
			}
		}
	case "media:category":
		for _, n := range nodes(v) {
			if t := strings.TrimSpace(n.Text); t != "" {
				out = append(out, t)
			}
		}
		if len(nodes(v)) == 0 {
			if t := strings.TrimSpace(text(v)); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}
