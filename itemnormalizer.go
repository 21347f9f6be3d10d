package feedparser

import "strings"

// normalizeItem maps a closed item/entry Node onto a canonical Article.
func (tb *treeBuilder) normalizeItem(root *Node) *Article {
	article := &Article{Extensions: map[string]*Value{}}

	if !tb.opts.Normalize {
		for _, key := range root.Children.Keys() {
			article.Extensions[key] = root.Children.Get(key)
		}
		return article
	}

	var categories []string

	for _, key := range root.Children.Keys() {
		v := root.Children.Get(key)
		switch key {
		case "title":
			article.Title = text(v)
		case "description", "summary":
			article.Summary = text(v)
			if article.Description == "" {
				article.Description = article.Summary
			}
		case "content", "content:encoded":
			article.Description = text(v)
		case "pubdate", "published", "issued":
			article.PubDate = parseDate(text(v))
			if article.Date.IsZero() {
				article.Date = article.PubDate
			}
		case "modified", "updated", "dc:date":
			article.Date = parseDate(text(v))
			if article.PubDate.IsZero() {
				article.PubDate = article.Date
			}
		case "link":
			tb.normalizeItemLink(article, v)
		case "guid", "id":
			article.GUID = text(v)
		case "author":
			article.Author = personText(v)
		case "dc:creator":
			article.Author = text(v)
		case "comments":
			article.Comments = text(v)
		case "source":
			article.Source = sourceFrom(tb.dialect, v)
		case "enclosure", "media:content":
			for _, n := range nodes(v) {
				if enc := enclosureFromNode(n); enc != nil {
					article.Enclosures = append(article.Enclosures, *enc)
				}
			}
		case "category", "dc:subject", "itunes:category", "media:category":
			categories = append(categories, extractCategories(key, v)...)
		case "feedburner:origlink", "pheedo:origlink":
			if article.OrigLink == "" {
				article.OrigLink = text(v)
			}
		default:
			// handled in the extensions pass below
		}
	}

	if article.GUID == "" && article.Link != "" {
		article.GUID = article.Link
	}

	if article.Description == "" {
		article.Description = text(root.Children.Get("itunes:summary"))
	}
	if article.Author == "" {
		article.Author = firstNonEmpty(
			text(root.Children.Get("itunes:author")),
			nestedText(root.Children.Get("itunes:owner"), "itunes:name"),
			text(root.Children.Get("dc:publisher")),
		)
	}
	if article.Image == nil || article.Image.URL == "" {
		url := firstNonEmpty(
			attr(firstNode(root.Children.Get("itunes:image")), "href"),
			attr(firstNode(root.Children.Get("media:thumbnail")), "url"),
			nestedAttr(root.Children.Get("media:content"), "media:thumbnail", "url"),
			nestedAttr(root.Children.Get("media:group"), "media:thumbnail", "url"),
			doublyNestedAttr(root.Children.Get("media:group"), "media:content", "media:thumbnail", "url"),
		)
		if url != "" {
			if article.Image == nil {
				article.Image = &Image{}
			}
			article.Image.URL = url
		}
	}
	article.Categories = dedupStrings(categories)

	explicitRaw := firstNonEmpty(text(root.Children.Get("itunes:explicit")), text(root.Children.Get("media:rating")))
	article.Explicit = isExplicitFlag(explicitRaw)

	for _, key := range root.Children.Keys() {
		if strings.HasPrefix(key, "#") {
			continue
		}
		ekey := key
		if !strings.Contains(ekey, ":") {
			ekey = string(tb.dialect) + ":" + ekey
		}
		article.Extensions[ekey] = root.Children.Get(key)
	}

	return article
}

// normalizeItemLink fans an Atom <link rel="..."> out across
// OrigLink/Link/Comments/Enclosures by relation, or treats a plain-text
// RSS-style <link> as the article's Link.
func (tb *treeBuilder) normalizeItemLink(article *Article, v *Value) {
	els := nodes(v)
	if len(els) == 0 {
		if article.Link == "" {
			article.Link = text(v)
		}
		return
	}
	for _, el := range els {
		href := attr(el, "href")
		if href == "" {
			if article.Link == "" {
				article.Link = text(el)
			}
			continue
		}
		switch attr(el, "rel") {
		case "canonical":
			article.OrigLink = href
		case "alternate", "":
			if article.Link == "" {
				article.Link = href
			}
		case "replies":
			article.Comments = href
		case "enclosure":
			article.Enclosures = append(article.Enclosures, Enclosure{
				URL:    href,
				Type:   attr(el, "type"),
				Length: attr(el, "length"),
			})
		}
	}
}

// sourceFrom builds a Source from an RSS/Atom <source> child.
func sourceFrom(dialect Dialect, v *Value) *Source {
	n := firstNode(v)
	if n == nil {
		if s := text(v); s != "" {
			return &Source{Title: s}
		}
		return nil
	}
	if dialect == DialectAtom {
		return &Source{
			Title: text(n.Children.Get("title")),
			URL:   attr(firstNode(n.Children.Get("link")), "href"),
		}
	}
	return &Source{Title: strings.TrimSpace(n.Text), URL: attr(n, "url")}
}

// enclosureFromNode builds an Enclosure from a single <enclosure> or
// <media:content> element.
func enclosureFromNode(n *Node) *Enclosure {
	if n == nil {
		return nil
	}
	url := attr(n, "url")
	if url == "" {
		return nil
	}
	typ := firstNonEmpty(attr(n, "type"), attr(n, "medium"))
	length := firstNonEmpty(attr(n, "length"), attr(n, "filesize"))
	return &Enclosure{URL: url, Type: typ, Length: length}
}

// nestedAttr reads attribute attrName off the grandchild named grandchild
// of the first node carried by v.
func nestedAttr(v *Value, grandchild, attrName string) string {
	n := firstNode(v)
	if n == nil {
		return ""
	}
	return attr(firstNode(n.Children.Get(grandchild)), attrName)
}

// doublyNestedAttr reads attribute attrName off v.child1.child2.
func doublyNestedAttr(v *Value, child1, child2, attrName string) string {
	n := firstNode(v)
	if n == nil {
		return ""
	}
	mid := firstNode(n.Children.Get(child1))
	if mid == nil {
		return ""
	}
	return attr(firstNode(mid.Children.Get(child2)), attrName)
}
