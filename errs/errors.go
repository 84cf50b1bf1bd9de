// Package errs defines the sentinel errors shared across linfit packages.
//
// Callers match these with errors.Is; packages wrap them with fmt.Errorf
// and %w to add context (observed dimensions, file paths, codec bytes).
package errs

import "errors"

var (
	// ErrDimensionMismatch indicates inconsistent input shapes: the response
	// length differs from the number of design-matrix rows, or the system is
	// underdetermined (fewer observations than predictor columns).
	ErrDimensionMismatch = errors.New("dimension mismatch between design matrix and response")

	// ErrSingularInput indicates a fully degenerate design matrix with zero
	// rows or zero columns. Rank deficiency of a non-empty matrix is NOT an
	// error; it is reported through FitResult.Aliased.
	ErrSingularInput = errors.New("design matrix has zero rows or zero columns")

	// ErrInvalidRankTolerance indicates a rank-detection tolerance outside
	// the accepted range (must be positive and below 1).
	ErrInvalidRankTolerance = errors.New("rank tolerance must be in (0, 1)")

	// ErrInvalidArchiveFormat indicates a fixture archive with a bad magic
	// number or a truncated frame.
	ErrInvalidArchiveFormat = errors.New("invalid fixture archive format")

	// ErrUnknownCodec indicates an unrecognized compression codec identifier.
	ErrUnknownCodec = errors.New("unknown compression codec")
)
