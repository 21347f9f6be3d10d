package feedparser

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ErrorKind classifies a parse-time error by severity.
type ErrorKind int

const (
	// KindTokenizerWarning is a non-fatal XML quibble: accumulated,
	// emitted as a warning, parsing resumes.
	KindTokenizerWarning ErrorKind = iota
	// KindTokenizerError is a recoverable parse error: accumulated,
	// conditionally emitted, parsing resumes.
	KindTokenizerError
	// KindIOError is a fatal upstream stream failure: accumulated, end
	// fires with it as the primary error.
	KindIOError
)

func (k ErrorKind) String() string {
	switch k {
	case KindTokenizerWarning:
		return "warning"
	case KindTokenizerError:
		return "error"
	case KindIOError:
		return "io"
	default:
		return "unknown"
	}
}

// ParseError wraps an underlying error with its ErrorKind.
type ParseError struct {
	Kind ErrorKind
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("feedparser: %s: %v", e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(kind ErrorKind, err error) *ParseError {
	return &ParseError{Kind: kind, Err: err}
}

// errorAccumulator collects ParseErrors during a parse as a
// github.com/hashicorp/go-multierror chain, so a completion callback's
// "most recent error, with prior errors attached as a sibling list" result
// is a real, inspectable error rather than a hand-rolled slice.
type errorAccumulator struct {
	merr *multierror.Error
}

func (a *errorAccumulator) add(e *ParseError) {
	a.merr = multierror.Append(a.merr, e)
}

// Errors returns the accumulated errors in the order they were added.
func (a *errorAccumulator) Errors() []error {
	if a.merr == nil {
		return nil
	}
	return a.merr.Errors
}

// Last returns the accumulated chain as a *multierror.Error whose Errors
// list ends with the most recently added error, preceded by every earlier
// one, or nil if no error was accumulated.
func (a *errorAccumulator) Last() error {
	if a.merr == nil || len(a.merr.Errors) == 0 {
		return nil
	}
	return a.merr
}
