package cogo

import "errors"

var (
	// ErrDegenerate is returned when a curve cannot be built from the given
	// points, for instance because two of them coincide.
	ErrDegenerate = errors.New("degenerate geometry")
	// ErrInvalidLength is returned for lengths that are negative, zero or
	// not finite where a positive length is required.
	ErrInvalidLength = errors.New("invalid length")
	// ErrInvalidOption is returned by [ExportOptions.Validate].
	ErrInvalidOption = errors.New("invalid export option")
)
