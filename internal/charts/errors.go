package charts

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyElementID is returned when a container or chart is requested
	// without an element id.
	ErrEmptyElementID = errors.New("element id cannot be empty")

	// ErrFallbackUnsupported is returned by RenderFallback for kinds, or
	// data, that cannot be drawn as a static image.
	ErrFallbackUnsupported = errors.New("static fallback not supported")
)

// UnknownKindError reports a chart kind missing from the descriptor table.
type UnknownKindError struct {
	Kind Kind
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown chart kind %q", string(e.Kind))
}

// FormatError reports column, row or attribute data that cannot be turned
// into script or markup. Index is -1 when the problem is not tied to a
// single entry.
type FormatError struct {
	Field string
	Index int
	Err   error
}

func (e *FormatError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid %s[%d]: %v", e.Field, e.Index, e.Err)
	}
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func formatErr(field string, index int, format string, args ...interface{}) *FormatError {
	return &FormatError{Field: field, Index: index, Err: fmt.Errorf(format, args...)}
}
