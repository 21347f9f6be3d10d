package feedparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamespaceRegistry_CanonicalPrefix(t *testing.T) {
	r := NewNamespaceRegistry()

	p, ok := r.CanonicalPrefix("http://www.w3.org/2005/Atom")
	assert.True(t, ok)
	assert.Equal(t, "atom", p)

	// Trailing-slash tolerant.
	p, ok = r.CanonicalPrefix("http://purl.org/rss/1.0")
	assert.True(t, ok)
	assert.Equal(t, "rdf", p)

	// Case-insensitive.
	p, ok = r.CanonicalPrefix("HTTP://PURL.ORG/DC/ELEMENTS/1.1/")
	assert.True(t, ok)
	assert.Equal(t, "dc", p)

	_, ok = r.CanonicalPrefix("http://example.com/unknown")
	assert.False(t, ok)
}

func TestNamespaceRegistry_BelongsTo(t *testing.T) {
	r := NewNamespaceRegistry()
	assert.True(t, r.BelongsTo("http://www.w3.org/2005/Atom", "atom"))
	assert.False(t, r.BelongsTo("http://www.w3.org/2005/Atom", "rdf"))
	assert.True(t, r.IsAtom("http://purl.org/atom/ns#"))
	assert.True(t, r.IsRDF("http://www.w3.org/1999/02/22-rdf-syntax-ns#"))
}
