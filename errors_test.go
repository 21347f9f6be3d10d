package feedparser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "warning", KindTokenizerWarning.String())
	assert.Equal(t, "error", KindTokenizerError.String())
	assert.Equal(t, "io", KindIOError.String())
}

func TestParseError_WrapsAndUnwraps(t *testing.T) {
	underlying := errors.New("bad token")
	pe := newParseError(KindTokenizerWarning, underlying)

	assert.ErrorIs(t, pe, underlying)
	assert.Contains(t, pe.Error(), "warning")
	assert.Contains(t, pe.Error(), "bad token")
}

func TestErrorAccumulator_EmptyIsNil(t *testing.T) {
	var acc errorAccumulator
	assert.Nil(t, acc.Errors())
	assert.Nil(t, acc.Last())
}

func TestErrorAccumulator_AddsInOrderAndLastCarriesChain(t *testing.T) {
	var acc errorAccumulator
	first := newParseError(KindTokenizerWarning, errors.New("one"))
	second := newParseError(KindIOError, errors.New("two"))

	acc.add(first)
	acc.add(second)

	errs := acc.Errors()
	assert.Len(t, errs, 2)
	assert.Same(t, first, errs[0])
	assert.Same(t, second, errs[1])

	last := acc.Last()
	assert.ErrorContains(t, last, "one")
	assert.ErrorContains(t, last, "two")
}
