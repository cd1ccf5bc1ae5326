package field

import "errors"

// Error categories. Every error returned by this module wraps exactly one of
// these, so callers can tell programmer errors apart with errors.Is.
var (
	// ErrType is returned for inputs of the wrong type: text where a grid is
	// expected, or continuous data where a classification is required.
	ErrType = errors.New("invalid input type")

	// ErrValue is returned for inputs of the right type but an unusable value:
	// wrong rank, ragged rows, empty grids, mismatched shapes, degenerate geometry.
	ErrValue = errors.New("invalid value")

	// ErrNotImplemented marks construction pathways that exist in the API but
	// have no implementation yet.
	ErrNotImplemented = errors.New("not implemented")
)
