package frames

import "errors"

// Refusal reasons. Operations wrap these with the offending coordinates, so
// callers should test with errors.Is.
var (
	// ErrInvalidDimensions: a frame was requested with rows or cols <= 0.
	ErrInvalidDimensions = errors.New("invalid frame dimensions")
	// ErrUnknownFrame: a frame id does not index the collection.
	ErrUnknownFrame = errors.New("unknown frame")
	// ErrSelfLink: a link must connect two distinct frames.
	ErrSelfLink = errors.New("cannot link a frame to itself")
	// ErrOutOfBounds: the cell lies outside the frame's grid.
	ErrOutOfBounds = errors.New("cell out of bounds")
	// ErrOccupied: the cell is already linked or blocked.
	ErrOccupied = errors.New("cell occupied")
	// ErrTargetClaimed: the target frame already records a link at the cell.
	ErrTargetClaimed = errors.New("cell already claimed on target frame")
	// ErrInvariant: frame state violates a data model invariant.
	ErrInvariant = errors.New("invariant violation")
)

// Code is a short machine-readable refusal category used in logs.
type Code string

const (
	CodeUnknown           Code = "unknown"
	CodeInvalidDimensions Code = "invalid_dimensions"
	CodeUnknownFrame      Code = "unknown_frame"
	CodeSelfLink          Code = "self_link"
	CodeOutOfBounds       Code = "out_of_bounds"
	CodeOccupied          Code = "occupied"
	CodeClaimed           Code = "claimed"
	CodeInvariant         Code = "invariant"
)

// Classify maps an error returned by this package to its Code.
func Classify(err error) Code {
	switch {
	case err == nil:
		return CodeUnknown
	case errors.Is(err, ErrInvalidDimensions):
		return CodeInvalidDimensions
	case errors.Is(err, ErrUnknownFrame):
		return CodeUnknownFrame
	case errors.Is(err, ErrSelfLink):
		return CodeSelfLink
	case errors.Is(err, ErrOutOfBounds):
		return CodeOutOfBounds
	case errors.Is(err, ErrOccupied):
		return CodeOccupied
	case errors.Is(err, ErrTargetClaimed):
		return CodeClaimed
	case errors.Is(err, ErrInvariant):
		return CodeInvariant
	default:
		return CodeUnknown
	}
}
