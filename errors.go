package vpath

import "errors"

// Sentinel errors for path construction and decoding.
var (
	// ErrInvalidGeometry is returned when a builder receives malformed
	// input such as non-finite coordinates or negative radii. The path is
	// left unchanged.
	ErrInvalidGeometry = errors.New("vpath: invalid geometry")

	// ErrMatrixLength is returned when a matrix is built from a slice that
	// does not hold exactly 16 finite values.
	ErrMatrixLength = errors.New("vpath: matrix must have 16 finite entries")

	// ErrNilPath is returned when a nil path is passed where one is required.
	ErrNilPath = errors.New("vpath: nil path")

	// ErrUnexpectedObject is returned by DecodePath when the object list
	// holds a value of the wrong type for the opcode being replayed.
	ErrUnexpectedObject = errors.New("vpath: unexpected object in command buffer")
)
