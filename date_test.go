package feedparser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	got := parseDate("Mon, 01 Jan 2024 00:00:00 GMT")
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got.UTC())

	got = parseDate("2024-01-01T00:00:00Z")
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got.UTC())

	assert.True(t, parseDate("").IsZero())
	assert.True(t, parseDate("not a date").IsZero())
}
