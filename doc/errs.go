package doc

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedValueType is returned when a value falls outside the
	// document type universe.
	ErrUnsupportedValueType = errors.New("unsupported value type")

	// ErrInvalidJSON is returned for malformed JSON text.
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrInvalidJSONTopLevel is returned when the outermost JSON value is
	// not of the required kind.
	ErrInvalidJSONTopLevel = errors.New("invalid JSON top level")

	// ErrIndexOutOfBounds is returned by array writes with an invalid index.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrCyclicReference is returned when a container would end up nested
	// inside itself.
	ErrCyclicReference = errors.New("cyclic reference")

	// ErrNotContainer is returned when writing through a fragment whose
	// parent is neither a dictionary nor an array.
	ErrNotContainer = errors.New("not a container")

	// ErrReadOnly is returned when writing through a fragment rooted in an
	// immutable container.
	ErrReadOnly = errors.New("read only")
)

// CoercionError reports a value rejected while coercing it into the
// document type universe.
type CoercionError struct {
	Path   string // kinded path of the offending value, e.g. "a.b[2]"
	GoType string
	Err    error
}

func (e *CoercionError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("coerce error at %s: %s: %v", e.Path, e.GoType, e.Err)
	}
	return fmt.Sprintf("coerce error: %s: %v", e.GoType, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

func indexError(index, n int) error {
	return fmt.Errorf("%w: index %d (len %d)", ErrIndexOutOfBounds, index, n)
}
