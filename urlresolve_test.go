package feedparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveURL(t *testing.T) {
	assert.Equal(t, "http://x/a", resolveURL("http://x/", "a"))
	assert.Equal(t, "http://y/b", resolveURL("http://x/", "http://y/b"))
	assert.Equal(t, "a", resolveURL("", "a"))
	assert.Equal(t, "", resolveURL("http://x/", ""))
}

func TestReresolve(t *testing.T) {
	n := NewNode("logo", "", "logo", "")
	n.Text = "img.png"

	child := NewNode("link", "", "link", "")
	child.Attrs["href"] = "rel.html"
	n.Children.AddChild("link", child, false, "")

	reresolve(n, "http://x/")
	assert.Equal(t, "http://x/img.png", n.Text)
	assert.Equal(t, "http://x/rel.html", child.Attrs["href"])
}
